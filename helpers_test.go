package ember

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// scriptedRand replays values in order, wrapping around, and counts draws.
type scriptedRand struct {
	values []float64
	calls  int
}

func (r *scriptedRand) Float64() float64 {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v
}

type drawCall struct {
	sheet    *SpriteSheet
	pos      Vec2
	src      TextureRegion
	color    Color
	rotation float64
	origin   Vec2
	scale    float64
	flip     FlipFlags
	depth    float32
}

// recordingBatch keeps every DrawSprite call and blend change.
type recordingBatch struct {
	calls  []drawCall
	blends []BlendMode
}

func (b *recordingBatch) DrawSprite(sheet *SpriteSheet, pos Vec2, src TextureRegion, c Color,
	rotation float64, origin Vec2, scale float64, flip FlipFlags, depth float32) {
	b.calls = append(b.calls, drawCall{sheet, pos, src, c, rotation, origin, scale, flip, depth})
}

func (b *recordingBatch) SetBlendMode(mode BlendMode) {
	b.blends = append(b.blends, mode)
}

// testConfig is a deterministic emitter: fixed ranges, no forces, spawning
// straight right at 100 px/s every 10ms.
func testConfig(capacity int) EmitterConfig {
	return EmitterConfig{
		Capacity:    capacity,
		Rand:        NewRand(42),
		SpawnRate:   Fixed(0.01),
		Direction:   Vec2{1, 0},
		Life:        Fixed(1),
		StartScale:  Fixed(1),
		EndScale:    Fixed(0.5),
		StartColor1: ColorWhite,
		StartColor2: ColorWhite,
		EndColor1:   Color{0, 0, 0, 1},
		EndColor2:   Color{0, 0, 0, 1},
		Speed:       Fixed(100),
		Mass:        Fixed(1),
	}
}
