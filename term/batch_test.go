package term

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/ember"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func draw(b *Batch, pos ember.Vec2, c ember.Color, scale float64, depth float32) {
	b.DrawSprite(nil, pos, ember.TextureRegion{}, c, 0, ember.Vec2{}, scale, ember.FlipNone, depth)
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		scale float64
		want  rune
	}{
		{0.1, '·'},
		{0.75, '•'},
		{1, '•'},
		{2, '●'},
		{3, '█'},
		{100, '█'},
	}
	for _, tt := range tests {
		if got := Glyph(tt.scale); got != tt.want {
			t.Errorf("Glyph(%v) = %q, want %q", tt.scale, got, tt.want)
		}
	}
}

func TestCellMapping(t *testing.T) {
	b := NewBatch(newScreen(t, 10, 5), 8, 16)
	b.Begin()

	tests := []struct {
		pos    ember.Vec2
		x, y   int
		inside bool
	}{
		{ember.Vec2{X: 0, Y: 0}, 0, 0, true},
		{ember.Vec2{X: 7.9, Y: 15.9}, 0, 0, true},
		{ember.Vec2{X: 8, Y: 16}, 1, 1, true},
		{ember.Vec2{X: 79, Y: 79}, 9, 4, true},
		{ember.Vec2{X: 80, Y: 0}, 0, 0, false},
		{ember.Vec2{X: -0.5, Y: 0}, 0, 0, false},
		{ember.Vec2{X: 0, Y: 80}, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := b.Cell(tt.pos)
		if ok != tt.inside || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("Cell(%v) = (%d, %d, %v), want (%d, %d, %v)", tt.pos, x, y, ok, tt.x, tt.y, tt.inside)
		}
	}
}

func TestCellBeforeBegin(t *testing.T) {
	b := NewBatch(newScreen(t, 10, 5), 1, 1)
	if _, _, ok := b.Cell(ember.Vec2{}); ok {
		t.Error("Cell should be off screen before Begin sizes the batch")
	}
}

func TestDrawWritesGlyph(t *testing.T) {
	screen := newScreen(t, 10, 5)
	b := NewBatch(screen, 1, 1)
	b.Begin()
	c := ember.Color{R: 1, G: 0.5, B: 0, A: 1}
	draw(b, ember.Vec2{X: 3, Y: 2}, c, 2, 0)
	b.End()

	r, _, style, _ := screen.GetContent(3, 2)
	if r != '●' {
		t.Errorf("rune = %q, want '●'", r)
	}
	want := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 128, 0)).Background(tcell.ColorBlack)
	if style != want {
		t.Errorf("style = %v, want %v", style, want)
	}
	if b.Drawn() != 1 {
		t.Errorf("Drawn = %d, want 1", b.Drawn())
	}
}

func TestDrawSkipsInvisible(t *testing.T) {
	screen := newScreen(t, 10, 5)
	b := NewBatch(screen, 1, 1)
	b.Begin()
	draw(b, ember.Vec2{X: 1, Y: 1}, ember.Color{R: 1, A: 0}, 1, 0)
	draw(b, ember.Vec2{X: 2, Y: 1}, ember.ColorWhite, 0, 0)
	draw(b, ember.Vec2{X: 50, Y: 1}, ember.ColorWhite, 1, 0)

	if b.Drawn() != 0 {
		t.Errorf("Drawn = %d, want 0", b.Drawn())
	}
	for _, x := range []int{1, 2} {
		if r, _, _, _ := screen.GetContent(x, 1); r != ' ' {
			t.Errorf("cell (%d,1) = %q, want blank", x, r)
		}
	}
}

func TestDepthOrdering(t *testing.T) {
	screen := newScreen(t, 4, 4)
	b := NewBatch(screen, 1, 1)
	b.Begin()

	pos := ember.Vec2{X: 1, Y: 1}
	draw(b, pos, ember.ColorWhite, 5, 2)
	draw(b, pos, ember.ColorWhite, 0.1, 1) // behind, dropped
	if r, _, _, _ := screen.GetContent(1, 1); r != '█' {
		t.Errorf("lower depth overwrote cell: %q", r)
	}

	draw(b, pos, ember.ColorWhite, 1, 2) // equal depth, later wins
	if r, _, _, _ := screen.GetContent(1, 1); r != '•' {
		t.Errorf("equal depth did not overwrite: %q", r)
	}
	if b.Drawn() != 2 {
		t.Errorf("Drawn = %d, want 2", b.Drawn())
	}

	// Begin resets the depth buffer and the screen.
	b.Begin()
	draw(b, pos, ember.ColorWhite, 0.1, 0)
	if r, _, _, _ := screen.GetContent(1, 1); r != '·' {
		t.Errorf("depth buffer survived Begin: %q", r)
	}
}

func TestRGBPremultiplies(t *testing.T) {
	got := RGB(ember.Color{R: 1, G: 1, B: 1, A: 0.5})
	if want := tcell.NewRGBColor(128, 128, 128); got != want {
		t.Errorf("RGB = %v, want %v", got, want)
	}
	if got := RGB(ember.Color{R: 2, G: -1, B: 0, A: 1}); got != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("RGB did not clamp: %v", got)
	}
}

func TestEmitterDrawsIntoTerminal(t *testing.T) {
	screen := newScreen(t, 20, 10)
	b := NewBatch(screen, 1, 1)
	e := ember.NewEmitter(ember.EmitterConfig{
		Capacity:    4,
		Rand:        ember.NewRand(1),
		SpawnRate:   ember.Fixed(1),
		Life:        ember.Fixed(10),
		StartScale:  ember.Fixed(1),
		EndScale:    ember.Fixed(1),
		Mass:        ember.Fixed(1),
		StartColor1: ember.ColorWhite,
		StartColor2: ember.ColorWhite,
		EndColor1:   ember.ColorWhite,
		EndColor2:   ember.ColorWhite,
		Position:    ember.Vec2{X: 5, Y: 5},
		Paused:      true,
	})
	if n := e.Burst(3); n != 3 {
		t.Fatalf("Burst = %d, want 3", n)
	}

	b.Begin()
	e.Draw(b)
	b.End()

	// Zero speed keeps every particle at the emitter, so they share a cell.
	if b.Drawn() != 3 {
		t.Errorf("Drawn = %d, want 3", b.Drawn())
	}
	if r, _, _, _ := screen.GetContent(5, 5); r != '•' {
		t.Errorf("cell (5,5) = %q, want '•'", r)
	}
}

func TestNaNPositionIsOffScreen(t *testing.T) {
	b := NewBatch(newScreen(t, 10, 5), 1, 1)
	b.Begin()

	nan := math.NaN()
	for _, pos := range []ember.Vec2{{X: nan, Y: 0}, {X: 0, Y: nan}, {X: nan, Y: nan}} {
		if _, _, ok := b.Cell(pos); ok {
			t.Errorf("Cell(%v) reported on screen", pos)
		}
		draw(b, pos, ember.ColorWhite, 1, 0)
	}
	if b.Drawn() != 0 {
		t.Errorf("Drawn = %d, want 0", b.Drawn())
	}
}

func TestZeroMassEmitterDoesNotPanic(t *testing.T) {
	screen := newScreen(t, 20, 10)
	b := NewBatch(screen, 1, 1)
	e := ember.NewEmitter(ember.EmitterConfig{
		Capacity:    4,
		Rand:        ember.NewRand(1),
		Life:        ember.Fixed(10),
		StartScale:  ember.Fixed(1),
		EndScale:    ember.Fixed(1),
		StartColor1: ember.ColorWhite,
		StartColor2: ember.ColorWhite,
		EndColor1:   ember.ColorWhite,
		EndColor2:   ember.ColorWhite,
		Position:    ember.Vec2{X: 5, Y: 5},
		Paused:      true,
	})
	e.Burst(4)

	// Zero mass and zero gravity divide 0 by 0, leaving NaN positions.
	for i := 0; i < 3; i++ {
		e.Update(0.1)
		b.Begin()
		e.Draw(b)
		b.End()
	}
	if e.AliveCount() != 4 {
		t.Errorf("alive = %d, want 4", e.AliveCount())
	}
	if b.Drawn() != 0 {
		t.Errorf("Drawn = %d, want 0 for NaN positions", b.Drawn())
	}
}
