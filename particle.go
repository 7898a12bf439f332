package ember

import (
	"github.com/tanema/gween/ease"
)

// LifeEpsilon is the remaining life, in seconds, at or below which a particle
// counts as expired. It absorbs the rounding left over when frame deltas sum
// to exactly the starting life.
const LifeEpsilon = 1e-5

// dampingMinSpeed is the speed under which damping is skipped, so a near-zero
// velocity is never normalized.
const dampingMinSpeed = 0.1

// ParticleSpawn carries everything Init needs to (re)start a particle.
type ParticleSpawn struct {
	Position      Vec2
	Velocity      Vec2
	Gravity       Vec2 // constant force, divided by Mass
	Wind          Vec2 // target velocity, not a force
	ExternalForce Vec2 // constant force, divided by Mass
	Damping       float64
	StartScale    float64
	EndScale      float64
	StartColor    Color
	EndColor      Color
	Life          float64 // seconds
	Mass          float64
	Spin          float64 // radians per second added to the sprite rotation
	// Ease reshapes the scale/color interpolation. Nil is linear.
	Ease ease.TweenFunc
}

// Particle is one point sprite with a finite lifetime. Particles live in an
// Emitter's pool and are re-initialized in place, never reallocated.
type Particle struct {
	Sprite Sprite

	Position      Vec2
	Velocity      Vec2
	Gravity       Vec2
	Wind          Vec2
	ExternalForce Vec2
	Mass          float64
	Damping       float64
	Spin          float64

	StartScale, EndScale float64
	StartColor, EndColor Color

	ease      ease.TweenFunc
	life      float64 // remaining lifetime in seconds
	startLife float64 // lifetime at spawn
}

// NewParticle returns a particle initialized from s.
func NewParticle(sprite Sprite, s ParticleSpawn) *Particle {
	p := &Particle{}
	p.Init(sprite, s)
	return p
}

// Init resets every field from s. The particle is alive afterwards when
// s.Life exceeds LifeEpsilon.
func (p *Particle) Init(sprite Sprite, s ParticleSpawn) {
	p.Sprite = sprite
	p.Position = s.Position
	p.Velocity = s.Velocity
	p.Gravity = s.Gravity
	p.Wind = s.Wind
	p.ExternalForce = s.ExternalForce
	p.Mass = s.Mass
	p.Damping = s.Damping
	p.Spin = s.Spin
	p.StartScale = s.StartScale
	p.EndScale = s.EndScale
	p.StartColor = s.StartColor
	p.EndColor = s.EndColor
	p.ease = s.Ease
	p.life = s.Life
	p.startLife = s.Life
	p.Sprite.Scale = s.StartScale
}

// Update advances the particle by dt seconds and reports whether it is still
// alive. The step order is fixed: forces, wind, damping, position, life.
func (p *Particle) Update(dt float64) bool {
	// Forces. Mass is not checked; zero mass gives infinite acceleration.
	p.Velocity.X += p.Gravity.X / p.Mass * dt
	p.Velocity.Y += p.Gravity.Y / p.Mass * dt
	p.Velocity.X += p.ExternalForce.X / p.Mass * dt
	p.Velocity.Y += p.ExternalForce.Y / p.Mass * dt

	// Wind pulls the velocity up to the wind's magnitude, never below it.
	if p.Velocity.Len() < p.Wind.Len() {
		p.Velocity.X += (p.Wind.X - p.Velocity.X) / p.Mass * dt
		p.Velocity.Y += (p.Wind.Y - p.Velocity.Y) / p.Mass * dt
	}

	// Damping is colinear with the heading; its sign picks drag or boost.
	if p.Damping != 0 {
		if speed := p.Velocity.Len(); speed > dampingMinSpeed {
			k := p.Damping / p.Mass * dt / speed
			p.Velocity.X += p.Velocity.X * k
			p.Velocity.Y += p.Velocity.Y * k
		}
	}

	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Sprite.Rotation += p.Spin * dt

	p.life -= dt
	return p.life > LifeEpsilon
}

// Alive reports whether the remaining life exceeds LifeEpsilon.
func (p *Particle) Alive() bool {
	return p.life > LifeEpsilon
}

// Kill expires the particle immediately.
func (p *Particle) Kill() {
	p.life = 0
}

// Life returns the remaining lifetime in seconds. It may dip slightly below
// zero on the frame the particle expires.
func (p *Particle) Life() float64 {
	return p.life
}

// StartLife returns the lifetime the particle was spawned with.
func (p *Particle) StartLife() float64 {
	return p.startLife
}

// LifePhase returns remaining/starting life in [0, 1]: 1 when just spawned,
// 0 when expired.
func (p *Particle) LifePhase() float64 {
	if p.startLife <= 0 {
		return 0
	}
	return clamp01(p.life / p.startLife)
}

// CurrentScale interpolates from StartScale (phase 1) to EndScale (phase 0).
func (p *Particle) CurrentScale() float64 {
	return lerp(p.StartScale, p.EndScale, p.progress())
}

// CurrentColor interpolates from StartColor (phase 1) to EndColor (phase 0).
func (p *Particle) CurrentColor() Color {
	return p.StartColor.Lerp(p.EndColor, p.progress())
}

// progress is 1 - phase, reshaped by the easing curve when one is set.
func (p *Particle) progress() float64 {
	t := 1 - p.LifePhase()
	if p.ease == nil || t == 0 || t == 1 {
		return t
	}
	return float64(p.ease(float32(t), 0, 1, 1))
}

// Draw writes the current scale through to the sprite and submits it at
// Position + offset with the current color.
func (p *Particle) Draw(b Batch, offset Vec2) {
	t := p.progress()
	p.Sprite.Scale = lerp(p.StartScale, p.EndScale, t)
	s := &p.Sprite
	b.DrawSprite(s.Sheet, p.Position.Add(offset), s.region(1-p.LifePhase()),
		p.StartColor.Lerp(p.EndColor, t), s.Rotation, s.Origin, s.Scale, s.Flip, s.Depth)
}
