package ember

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion is a source rectangle within a sprite sheet image, in pixels.
type TextureRegion struct {
	X, Y          int
	Width, Height int
}

// SpriteSheet is a grid of equally sized frames on one image. It is the
// opaque sheet handle passed through to a Batch; only batches look inside.
type SpriteSheet struct {
	// Image holds the frames. A nil image draws a 1x1 white pixel, which
	// scaled up gives solid square particles.
	Image *ebiten.Image
	// FrameW and FrameH are the size of one frame. Zero means the whole image.
	FrameW, FrameH int
	// Columns is the number of frames per row. Zero means as many as fit.
	Columns int
	// Frames is the total frame count. Zero means Columns * rows.
	Frames int
}

// FrameCount returns the number of addressable frames (at least 1).
func (s *SpriteSheet) FrameCount() int {
	if s == nil || s.Image == nil {
		return 1
	}
	if s.Frames > 0 {
		return s.Frames
	}
	fw, fh := s.frameSize()
	b := s.Image.Bounds()
	n := (b.Dx() / fw) * (b.Dy() / fh)
	if n < 1 {
		return 1
	}
	return n
}

// Region returns the source rectangle for frame. Out-of-range frames clamp
// to the first or last frame.
func (s *SpriteSheet) Region(frame int) TextureRegion {
	if s == nil || s.Image == nil {
		return TextureRegion{Width: 1, Height: 1}
	}
	n := s.FrameCount()
	if frame < 0 {
		frame = 0
	} else if frame >= n {
		frame = n - 1
	}
	fw, fh := s.frameSize()
	cols := s.Columns
	if cols <= 0 {
		cols = s.Image.Bounds().Dx() / fw
		if cols < 1 {
			cols = 1
		}
	}
	b := s.Image.Bounds()
	return TextureRegion{
		X:      b.Min.X + (frame%cols)*fw,
		Y:      b.Min.Y + (frame/cols)*fh,
		Width:  fw,
		Height: fh,
	}
}

func (s *SpriteSheet) frameSize() (w, h int) {
	b := s.Image.Bounds()
	w, h = s.FrameW, s.FrameH
	if w <= 0 {
		w = b.Dx()
	}
	if h <= 0 {
		h = b.Dy()
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Sprite is the visual half of a particle: which frame of which sheet to
// draw, and how. Particles own a Sprite by value.
type Sprite struct {
	Sheet *SpriteSheet
	Frame int
	// Animated plays the sheet's frames once over the particle lifetime,
	// starting at Frame.
	Animated bool
	Rotation float64 // radians
	// Origin is the pivot for rotation and scale, in frame pixels.
	Origin Vec2
	Scale  float64
	Flip   FlipFlags
	Depth  float32
}

// region resolves the source rectangle for the given life progress in [0, 1].
func (s *Sprite) region(progress float64) TextureRegion {
	frame := s.Frame
	if s.Animated {
		n := s.Sheet.FrameCount() - s.Frame
		if n > 1 {
			f := int(progress * float64(n))
			if f >= n {
				f = n - 1
			}
			frame += f
		}
	}
	return s.Sheet.Region(frame)
}
