package ember

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNilSheetIsWhitePixel(t *testing.T) {
	var s *SpriteSheet
	if s.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", s.FrameCount())
	}
	if r := s.Region(5); r != (TextureRegion{Width: 1, Height: 1}) {
		t.Errorf("Region = %+v", r)
	}
	empty := &SpriteSheet{}
	if r := empty.Region(0); r != (TextureRegion{Width: 1, Height: 1}) {
		t.Errorf("Region without image = %+v", r)
	}
}

func TestSpriteSheetGrid(t *testing.T) {
	sheet := &SpriteSheet{Image: ebiten.NewImage(64, 32), FrameW: 16, FrameH: 16}
	if sheet.FrameCount() != 8 {
		t.Fatalf("FrameCount = %d, want 8", sheet.FrameCount())
	}

	tests := []struct {
		frame int
		want  TextureRegion
	}{
		{0, TextureRegion{0, 0, 16, 16}},
		{3, TextureRegion{48, 0, 16, 16}},
		{4, TextureRegion{0, 16, 16, 16}},
		{7, TextureRegion{48, 16, 16, 16}},
		{-1, TextureRegion{0, 0, 16, 16}},
		{99, TextureRegion{48, 16, 16, 16}},
	}
	for _, tt := range tests {
		if got := sheet.Region(tt.frame); got != tt.want {
			t.Errorf("Region(%d) = %+v, want %+v", tt.frame, got, tt.want)
		}
	}
}

func TestSpriteSheetExplicitLayout(t *testing.T) {
	sheet := &SpriteSheet{Image: ebiten.NewImage(64, 32), FrameW: 16, FrameH: 16, Columns: 2, Frames: 3}
	if sheet.FrameCount() != 3 {
		t.Errorf("FrameCount = %d, want 3", sheet.FrameCount())
	}
	if got := sheet.Region(2); got != (TextureRegion{0, 16, 16, 16}) {
		t.Errorf("Region(2) = %+v", got)
	}
}

func TestSpriteSheetWholeImage(t *testing.T) {
	sheet := &SpriteSheet{Image: ebiten.NewImage(10, 6)}
	if sheet.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", sheet.FrameCount())
	}
	if got := sheet.Region(0); got != (TextureRegion{0, 0, 10, 6}) {
		t.Errorf("Region = %+v", got)
	}
}

func TestSpriteAnimatedRegion(t *testing.T) {
	sheet := &SpriteSheet{Image: ebiten.NewImage(64, 16), FrameW: 16, FrameH: 16}
	s := Sprite{Sheet: sheet, Frame: 1, Animated: true}

	tests := []struct {
		progress float64
		wantX    int
	}{
		{0, 16},
		{0.34, 32},
		{0.99, 48},
		{1, 48},
	}
	for _, tt := range tests {
		if got := s.region(tt.progress); got.X != tt.wantX {
			t.Errorf("region(%v).X = %d, want %d", tt.progress, got.X, tt.wantX)
		}
	}

	s.Animated = false
	if got := s.region(0.9); got.X != 16 {
		t.Errorf("static region X = %d, want 16", got.X)
	}
}

func TestParticleDrawAdvancesAnimation(t *testing.T) {
	sheet := &SpriteSheet{Image: ebiten.NewImage(32, 16), FrameW: 16, FrameH: 16}
	s := spawnAt(1)
	p := NewParticle(Sprite{Sheet: sheet, Animated: true, Scale: 1}, s)

	b := &recordingBatch{}
	p.Draw(b, Vec2{})
	p.Update(0.75)
	p.Draw(b, Vec2{})
	if b.calls[0].src.X != 0 || b.calls[1].src.X != 16 {
		t.Errorf("frames = %d, %d; want 0, 16", b.calls[0].src.X, b.calls[1].src.X)
	}
	if b.calls[0].sheet != sheet {
		t.Error("sheet not passed through")
	}
}
