package ember

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// WindGust returns a PreUpdate strategy that swings the emitter's wind
// around the value it had on the first frame, by ±amplitude over period
// seconds. It owns Wind while installed; live edits are overwritten.
func WindGust(amplitude Vec2, period float64) ForceFunc {
	var base Vec2
	var t float64
	started := false
	return func(e *Emitter, dt float64) {
		if !started {
			base = e.Wind
			started = true
		}
		t += dt
		if period <= 0 {
			return
		}
		s := math.Sin(2 * math.Pi * t / period)
		e.Wind = base.Add(amplitude.Scale(s))
	}
}

// TweenWind returns a PreUpdate strategy that eases the emitter's wind from
// its first-frame value to target over duration seconds, then holds it.
func TweenWind(target Vec2, duration float64, fn ease.TweenFunc) ForceFunc {
	var tx, ty *gween.Tween
	done := false
	return func(e *Emitter, dt float64) {
		if done {
			return
		}
		if tx == nil {
			tx = gween.New(float32(e.Wind.X), float32(target.X), float32(duration), fn)
			ty = gween.New(float32(e.Wind.Y), float32(target.Y), float32(duration), fn)
		}
		x, fx := tx.Update(float32(dt))
		y, fy := ty.Update(float32(dt))
		e.Wind = Vec2{float64(x), float64(y)}
		if fx && fy {
			e.Wind = target
			done = true
		}
	}
}

// Vortex returns a PostUpdate strategy that pushes every live particle
// perpendicular to its offset from the emitter, so the cloud swirls.
// Positive strength turns clockwise on screen.
func Vortex(strength float64) ForceFunc {
	return func(e *Emitter, dt float64) {
		for i := range e.particles {
			if !e.live[i] {
				continue
			}
			p := &e.particles[i]
			rel := p.Position
			if e.config.WorldSpace {
				rel = rel.Sub(e.Position)
			}
			tangent := Vec2{-rel.Y, rel.X}.Normalize()
			p.Velocity = p.Velocity.Add(tangent.Scale(strength / p.Mass * dt))
		}
	}
}
