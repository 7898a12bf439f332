// Package term renders ember particles into a terminal through tcell. Each
// particle becomes one glyph in the cell under its position; the glyph grows
// with the particle's scale and its foreground color is the particle color
// premultiplied over the background.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/ember"
)

// glyphs ordered by the scale they stand for.
var glyphs = [...]struct {
	maxScale float64
	r        rune
}{
	{0.75, '·'},
	{1.5, '•'},
	{3, '●'},
	{math.Inf(1), '█'},
}

// Glyph returns the rune used for a particle drawn at scale.
func Glyph(scale float64) rune {
	for _, g := range glyphs {
		if scale < g.maxScale {
			return g.r
		}
	}
	return glyphs[len(glyphs)-1].r
}

// Batch is an ember.Batch over a tcell.Screen. World coordinates are mapped
// to cells by CellW x CellH pixels per cell. When several particles land in
// one cell the highest depth wins; on equal depth the later draw wins.
type Batch struct {
	screen tcell.Screen

	CellW, CellH float64
	Background   tcell.Color

	w, h   int
	depth  []float32
	filled []bool
	drawn  int
}

var _ ember.Batch = (*Batch)(nil)

// NewBatch creates a Batch drawing into screen. Non-positive cell sizes
// default to one pixel per cell.
func NewBatch(screen tcell.Screen, cellW, cellH float64) *Batch {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Batch{
		screen:     screen,
		CellW:      cellW,
		CellH:      cellH,
		Background: tcell.ColorBlack,
	}
}

// Begin clears the screen and the per-cell depth buffer. It must be called
// before each frame's draws.
func (b *Batch) Begin() {
	b.w, b.h = b.screen.Size()
	n := b.w * b.h
	if cap(b.depth) < n {
		b.depth = make([]float32, n)
		b.filled = make([]bool, n)
	}
	b.depth = b.depth[:n]
	b.filled = b.filled[:n]
	clear(b.filled)
	b.drawn = 0
	b.screen.Fill(' ', tcell.StyleDefault.Background(b.Background))
}

// DrawSprite implements ember.Batch. Texture region, rotation, origin and
// flip have no meaning in a single cell and are ignored.
func (b *Batch) DrawSprite(_ *ember.SpriteSheet, pos ember.Vec2, _ ember.TextureRegion, c ember.Color,
	_ float64, _ ember.Vec2, scale float64, _ ember.FlipFlags, depth float32) {
	if c.A <= 0 || scale <= 0 {
		return
	}
	x, y, ok := b.Cell(pos)
	if !ok {
		return
	}
	i := y*b.w + x
	if b.filled[i] && depth < b.depth[i] {
		return
	}
	b.filled[i] = true
	b.depth[i] = depth
	b.drawn++

	b.screen.SetContent(x, y, Glyph(scale), nil,
		tcell.StyleDefault.Foreground(RGB(c)).Background(b.Background))
}

// End presents the frame.
func (b *Batch) End() {
	b.screen.Show()
}

// Cell maps a world position to the cell containing it. ok is false when
// the cell lies off screen or Begin has not sized the batch yet.
func (b *Batch) Cell(pos ember.Vec2) (x, y int, ok bool) {
	fx := math.Floor(pos.X / b.CellW)
	fy := math.Floor(pos.Y / b.CellH)
	// Written so that NaN coordinates land off screen.
	if !(fx >= 0 && fx < float64(b.w) && fy >= 0 && fy < float64(b.h)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// Drawn returns the number of glyphs written since Begin, counting
// overwrites.
func (b *Batch) Drawn() int {
	return b.drawn
}

// RGB converts c to a 24-bit terminal color, premultiplied over black.
func RGB(c ember.Color) tcell.Color {
	r, g, bl, _ := c.Premultiplied()
	return tcell.NewRGBColor(channel(r), channel(g), channel(bl))
}

func channel(v float32) int32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int32(v*255 + 0.5)
}
