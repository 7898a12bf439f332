package ember

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestVec2(t *testing.T) {
	a := Vec2{3, 4}
	assertVec(t, "Add", a.Add(Vec2{1, -1}), Vec2{4, 3})
	assertVec(t, "Sub", a.Sub(Vec2{1, -1}), Vec2{2, 5})
	assertVec(t, "Scale", a.Scale(2), Vec2{6, 8})
	assertNear(t, "Len", a.Len(), 5)
	assertVec(t, "Normalize", a.Normalize(), Vec2{0.6, 0.8})
	assertVec(t, "Normalize zero", Vec2{}.Normalize(), Vec2{})
	assertVec(t, "Rotate", Vec2{1, 0}.Rotate(math.Pi/2), Vec2{0, 1})
}

func TestRangeLerp(t *testing.T) {
	r := Range{2, 6}
	assertNear(t, "u=0", r.Lerp(0), 2)
	assertNear(t, "u=0.25", r.Lerp(0.25), 3)
	assertNear(t, "inverted", Range{6, 2}.Lerp(0.25), 5)

	// Degenerate ranges return the value exactly, whatever the sample.
	for _, u := range []float64{0, 0.3, 0.999999} {
		if got := Fixed(0.1).Lerp(u); got != 0.1 {
			t.Errorf("Fixed(0.1).Lerp(%v) = %v", u, got)
		}
	}
}

func TestColorLerp(t *testing.T) {
	a := Color{1, 0, 0, 1}
	b := Color{0, 1, 0, 0}
	if a.Lerp(b, 0) != a || a.Lerp(b, 1) != b {
		t.Error("Lerp endpoints are not exact")
	}
	mid := a.Lerp(b, 0.5)
	if mid != (Color{0.5, 0.5, 0, 0.5}) {
		t.Errorf("Lerp(0.5) = %v", mid)
	}
}

func TestColorPremultiplied(t *testing.T) {
	r, g, b, a := Color{1, 0.5, 0.25, 0.5}.Premultiplied()
	if r != 0.5 || g != 0.25 || b != 0.125 || a != 0.5 {
		t.Errorf("Premultiplied = %v %v %v %v", r, g, b, a)
	}
	if got := (Color{2, -1, 1, 1}).toRGBA(); got != (color.RGBA{255, 0, 255, 255}) {
		t.Errorf("toRGBA did not clamp: %v", got)
	}
}

func TestBlendModeEbitenBlend(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want ebiten.Blend
	}{
		{BlendNormal, ebiten.BlendSourceOver},
		{BlendAdd, ebiten.BlendLighter},
		{BlendNone, ebiten.BlendCopy},
		{BlendMode(99), ebiten.BlendSourceOver},
	}
	for _, tt := range tests {
		if got := tt.mode.EbitenBlend(); got != tt.want {
			t.Errorf("BlendMode(%d).EbitenBlend() = %+v", tt.mode, got)
		}
	}
	if BlendMultiply.EbitenBlend().BlendFactorSourceRGB != ebiten.BlendFactorDestinationColor {
		t.Error("multiply should scale the source by the destination")
	}
	if BlendScreen.EbitenBlend().BlendFactorDestinationRGB != ebiten.BlendFactorOneMinusSourceColor {
		t.Error("screen should scale the destination by 1 - source")
	}
}

func TestFlipFlags(t *testing.T) {
	if FlipNone != 0 || FlipHorizontal == FlipVertical || FlipHorizontal&FlipVertical != 0 {
		t.Errorf("flip flags overlap: %d %d %d", FlipNone, FlipHorizontal, FlipVertical)
	}
}

func TestLerpEndpointsExact(t *testing.T) {
	for _, pair := range [][2]float64{{0.1, 0.7}, {1e9, -3}, {-0.3, 0.3}} {
		if lerp(pair[0], pair[1], 0) != pair[0] || lerp(pair[0], pair[1], 1) != pair[1] {
			t.Errorf("lerp(%v, %v) endpoints not exact", pair[0], pair[1])
		}
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(123), NewRand(123)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sources diverged at draw %d", i)
		}
	}
	if NewRand(1).Float64() == NewRand(2).Float64() {
		t.Error("different seeds produced the same first sample")
	}
}

func TestSampleAlwaysDraws(t *testing.T) {
	r := &scriptedRand{values: []float64{0.5}}
	sample(Fixed(3), r)
	sample(Range{0, 1}, r)
	if r.calls != 2 {
		t.Errorf("draws = %d, want 2", r.calls)
	}
}
