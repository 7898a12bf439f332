package ember

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Batch is the draw primitive particles render through. Implementations
// decide how a sprite is rasterized; the engine only hands over these
// parameters once per live particle per frame.
type Batch interface {
	DrawSprite(sheet *SpriteSheet, pos Vec2, src TextureRegion, c Color,
		rotation float64, origin Vec2, scale float64, flip FlipFlags, depth float32)
}

// BlendSetter is implemented by batches that honor per-emitter blend modes.
// Emitter.Draw sets the mode before submitting its particles.
type BlendSetter interface {
	SetBlendMode(mode BlendMode)
}

// BatchStats reports what the last End submitted.
type BatchStats struct {
	Sprites   int
	DrawCalls int
}

// spriteCommand is one queued DrawSprite call. A nil img stands for the
// shared white pixel.
type spriteCommand struct {
	img      *ebiten.Image
	pos      Vec2
	src      TextureRegion
	color    Color
	rotation float64
	origin   Vec2
	scale    float64
	flip     FlipFlags
	depth    float32
	blend    BlendMode
}

// ImageBatch draws sprites onto an ebiten image. Sprites queued between
// Begin and End are stable-sorted by depth (lowest first) and submitted as
// one DrawTriangles32 call per run of equal image and blend mode.
// Buffers are reused, so a steady frame does not allocate.
type ImageBatch struct {
	target   *ebiten.Image
	blend    BlendMode
	commands []spriteCommand
	sortBuf  []spriteCommand
	verts    []ebiten.Vertex
	inds     []uint32
	stats    BatchStats
}

const defaultBatchCap = 1024

// NewImageBatch creates an ImageBatch with preallocated buffers.
func NewImageBatch() *ImageBatch {
	return &ImageBatch{
		commands: make([]spriteCommand, 0, defaultBatchCap),
		sortBuf:  make([]spriteCommand, 0, defaultBatchCap),
		verts:    make([]ebiten.Vertex, 0, defaultBatchCap*4),
		inds:     make([]uint32, 0, defaultBatchCap*6),
	}
}

// Begin starts a frame drawing onto target and resets the blend mode to normal.
func (b *ImageBatch) Begin(target *ebiten.Image) {
	b.target = target
	b.blend = BlendNormal
	b.commands = b.commands[:0]
}

// SetBlendMode sets the blend mode for sprites queued from now on.
func (b *ImageBatch) SetBlendMode(mode BlendMode) {
	b.blend = mode
}

// DrawSprite queues one sprite. Nothing reaches the target until End.
func (b *ImageBatch) DrawSprite(sheet *SpriteSheet, pos Vec2, src TextureRegion, c Color,
	rotation float64, origin Vec2, scale float64, flip FlipFlags, depth float32) {
	b.commands = append(b.commands, spriteCommand{
		img:      sheetImage(sheet),
		pos:      pos,
		src:      src,
		color:    c,
		rotation: rotation,
		origin:   origin,
		scale:    scale,
		flip:     flip,
		depth:    depth,
		blend:    b.blend,
	})
}

// End sorts the queued sprites and submits them to the target.
func (b *ImageBatch) End() {
	b.stats = BatchStats{Sprites: len(b.commands)}
	if b.target == nil || len(b.commands) == 0 {
		b.commands = b.commands[:0]
		return
	}
	b.mergeSort()

	runStart := 0
	for i := 1; i <= len(b.commands); i++ {
		if i < len(b.commands) &&
			b.commands[i].img == b.commands[runStart].img &&
			b.commands[i].blend == b.commands[runStart].blend {
			continue
		}
		b.flush(b.commands[runStart:i])
		runStart = i
	}
	b.commands = b.commands[:0]
}

// Stats returns the counters of the last End.
func (b *ImageBatch) Stats() BatchStats {
	return b.stats
}

// flush submits one run of commands sharing an image and blend mode.
func (b *ImageBatch) flush(run []spriteCommand) {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	for i := range run {
		b.appendQuad(&run[i])
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = run[0].blend.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	img := run[0].img
	if img == nil {
		img = ensureWhitePixel()
	}
	b.target.DrawTriangles32(b.verts, b.inds, img, &op)
	b.stats.DrawCalls++
}

// appendQuad transforms the source rectangle around the origin by scale and
// rotation, then translates it to the command position.
func (b *ImageBatch) appendQuad(cmd *spriteCommand) {
	w := float64(cmd.src.Width)
	h := float64(cmd.src.Height)

	u0, v0 := float32(cmd.src.X), float32(cmd.src.Y)
	u1, v1 := u0+float32(cmd.src.Width), v0+float32(cmd.src.Height)
	if cmd.flip&FlipHorizontal != 0 {
		u0, u1 = u1, u0
	}
	if cmd.flip&FlipVertical != 0 {
		v0, v1 = v1, v0
	}
	su := [4]float32{u0, u1, u0, u1}
	sv := [4]float32{v0, v0, v1, v1}
	lx := [4]float64{0, w, 0, w}
	ly := [4]float64{0, 0, h, h}

	sin, cos := math.Sincos(cmd.rotation)
	cr, cg, cb, ca := cmd.color.Premultiplied()

	base := uint32(len(b.verts))
	for j := 0; j < 4; j++ {
		x := (lx[j] - cmd.origin.X) * cmd.scale
		y := (ly[j] - cmd.origin.Y) * cmd.scale
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(x*cos - y*sin + cmd.pos.X),
			DstY:   float32(x*sin + y*cos + cmd.pos.Y),
			SrcX:   su[j],
			SrcY:   sv[j],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// mergeSort stable-sorts b.commands by depth using b.sortBuf as scratch.
// Bottom-up merge sort: zero allocations after the buffer reaches its
// high-water mark.
func (b *ImageBatch) mergeSort() {
	n := len(b.commands)
	if n <= 1 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]spriteCommand, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src := b.commands
	dst := b.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}

	if swapped {
		copy(b.commands, b.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []spriteCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if src[i].depth <= src[j].depth {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

func sheetImage(sheet *SpriteSheet) *ebiten.Image {
	if sheet == nil {
		return nil
	}
	return sheet.Image
}

// whitePixel is created on first use (no sync.Once, ember is single-threaded).
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}
