package ember

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// ForceFunc is a per-frame force strategy composed into an emitter. It runs
// once per Update, either before spawning and integration (PreUpdate) or
// after it (PostUpdate), and may adjust the emitter's live forces or, via
// ForEachAlive, the live particles.
type ForceFunc func(e *Emitter, dt float64)

// Forces groups the global forces an emitter stamps onto every particle it
// spawns.
type Forces struct {
	Gravity       Vec2    `yaml:"gravity"`
	Wind          Vec2    `yaml:"wind"`
	ExternalForce Vec2    `yaml:"externalForce"`
	Damping       float64 `yaml:"damping"`
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// Capacity is the pool size. Spawns are dropped while the pool is full.
	// Zero gives an emitter that never spawns.
	Capacity int
	// Rand supplies every random sample. Nil uses a freshly seeded source.
	Rand RandSource
	// Sprite is copied into each particle at spawn.
	Sprite Sprite
	// SpawnRate is the range of seconds between two spawns.
	SpawnRate Range
	// Direction is the base launch direction; only its heading matters.
	Direction Vec2
	// NoiseAngle is the range of angles, in radians, added to Direction.
	NoiseAngle Range
	// Life is the range of particle lifetimes in seconds.
	Life Range
	// StartScale and EndScale are sampled per particle; the particle
	// interpolates from one to the other over its lifetime.
	StartScale Range
	EndScale   Range
	// The start color is a random blend of StartColor1 and StartColor2;
	// likewise the end color.
	StartColor1, StartColor2 Color
	EndColor1, EndColor2     Color
	// Speed is the range of launch speeds in pixels per second.
	Speed Range
	// Mass is the range of particle masses.
	Mass Range
	// Spin is the range of angular velocities in radians per second.
	Spin Range
	// Rotation is the range of initial sprite rotations in radians.
	Rotation Range
	// AlignRotation starts each sprite rotated along its launch heading,
	// plus the sampled Rotation.
	AlignRotation bool
	// Ease reshapes the scale/color interpolation. Nil is linear.
	Ease ease.TweenFunc

	Forces
	// Position is the emitter's initial world position.
	Position Vec2
	// WorldSpace, when true, spawns particles at the emitter's world position
	// and draws them without offset, so they stay put when the emitter moves.
	// By default particles are relative to the emitter and follow it.
	WorldSpace bool
	// BoxX and BoxY are ranges of spawn offsets from the emitter, giving a
	// rectangular spawn area. Zero ranges spawn at the emitter itself.
	BoxX, BoxY Range
	// Paused starts the emitter with Emitting false.
	Paused bool
	// Duration stops emission after this many seconds. Zero emits forever.
	Duration float64
	// BlendMode is a hint for batches that group emitters.
	BlendMode BlendMode

	PreUpdate  ForceFunc
	PostUpdate ForceFunc
}

// Emitter owns a fixed pool of particles and decides when to spawn them.
// It is single-threaded: Update and Draw run once per frame from the owner's
// loop, Update first.
type Emitter struct {
	// Global forces stamped onto particles at spawn. Changing them affects
	// the next spawn, not particles already alive.
	Gravity       Vec2
	Wind          Vec2
	ExternalForce Vec2
	Damping       float64

	Position Vec2
	Emitting bool

	config    EmitterConfig
	rng       RandSource
	particles []Particle
	live      []bool
	alive     int
	cursor    int
	elapsed   float64 // time accumulated toward the next spawn
	interval  float64 // current spawn interval
	age       float64
}

// NewEmitter creates an Emitter with a preallocated pool and samples the
// first spawn interval.
func NewEmitter(cfg EmitterConfig) *Emitter {
	capacity := cfg.Capacity
	if capacity < 0 {
		capacity = 0
	}
	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(rand.Uint64())
	}
	e := &Emitter{
		Gravity:       cfg.Gravity,
		Wind:          cfg.Wind,
		ExternalForce: cfg.ExternalForce,
		Damping:       cfg.Damping,
		Position:      cfg.Position,
		Emitting:      !cfg.Paused,
		config:        cfg,
		rng:           rng,
		particles:     make([]Particle, capacity),
		live:          make([]bool, capacity),
	}
	e.interval = sample(cfg.SpawnRate, rng)
	return e
}

// Start resumes emitting particles. Time spent stopped does not count
// toward the next spawn. Once Duration has run out, Start re-arms it.
func (e *Emitter) Start() {
	if !e.Emitting {
		e.elapsed = 0
	}
	if e.config.Duration > 0 && e.age >= e.config.Duration {
		e.age = 0
	}
	e.Emitting = true
}

// Stop stops emitting new particles. Existing particles live out their lifetime.
func (e *Emitter) Stop() {
	e.Emitting = false
}

// Restart clears the pool, rewinds the duration clock and starts emitting.
func (e *Emitter) Restart() {
	e.Clear()
	e.age = 0
	e.Emitting = true
}

// Clear kills every particle immediately, bypassing natural expiry.
func (e *Emitter) Clear() {
	for i := range e.particles {
		e.particles[i].Kill()
		e.live[i] = false
	}
	e.alive = 0
	e.cursor = 0
	e.elapsed = 0
}

// AliveCount returns the number of alive particles.
func (e *Emitter) AliveCount() int {
	return e.alive
}

// Capacity returns the pool size.
func (e *Emitter) Capacity() int {
	return len(e.particles)
}

// AllParticlesDead reports whether no particle is alive.
func (e *Emitter) AllParticlesDead() bool {
	return e.alive == 0
}

// Inactive reports whether the emitter is not emitting and has no live
// particles, i.e. whether its owner may discard it.
func (e *Emitter) Inactive() bool {
	return !e.Emitting && e.alive == 0
}

// Config returns a pointer to the emitter's config for live tuning of the
// spawn ranges. Capacity, Rand, Forces and Position are read only at
// construction; use the emitter's fields for those.
func (e *Emitter) Config() *EmitterConfig {
	return &e.config
}

// Forces returns the current global forces.
func (e *Emitter) Forces() Forces {
	return Forces{Gravity: e.Gravity, Wind: e.Wind, ExternalForce: e.ExternalForce, Damping: e.Damping}
}

// SetForces replaces the global forces used by future spawns.
func (e *Emitter) SetForces(f Forces) {
	e.Gravity = f.Gravity
	e.Wind = f.Wind
	e.ExternalForce = f.ExternalForce
	e.Damping = f.Damping
}

// ForEachAlive calls fn for every live particle in pool order.
func (e *Emitter) ForEachAlive(fn func(p *Particle)) {
	for i := range e.particles {
		if e.live[i] {
			fn(&e.particles[i])
		}
	}
}

// Update advances the spawn schedule and every live particle by dt seconds.
func (e *Emitter) Update(dt float64) {
	if e.config.PreUpdate != nil {
		e.config.PreUpdate(e, dt)
	}

	if e.config.Duration > 0 && e.Emitting {
		e.age += dt
		if e.age >= e.config.Duration {
			e.Emitting = false
		}
	}

	e.elapsed += dt
	capacity := len(e.particles)
	for e.Emitting && e.elapsed > e.interval {
		spawned := false
		if e.alive < capacity {
			e.spawnAt(e.cursor)
			e.cursor = (e.cursor + 1) % capacity
			spawned = true
		}
		if !spawned && e.interval <= 0 {
			// Nothing can spawn until a slot frees up, and a non-positive
			// interval would never drain the accumulator.
			e.elapsed = 0
			break
		}
		e.elapsed -= e.interval
		e.interval = sample(e.config.SpawnRate, e.rng)
		if e.alive < capacity {
			for e.live[e.cursor] {
				e.cursor = (e.cursor + 1) % capacity
			}
		}
	}

	for i := range e.particles {
		if !e.live[i] {
			continue
		}
		if !e.particles[i].Update(dt) {
			e.live[i] = false
			e.alive--
		}
	}

	if e.config.PostUpdate != nil {
		e.config.PostUpdate(e, dt)
	}

	if globalDebug {
		debugCheckPool(e)
	}
}

// Burst spawns up to n particles immediately into free slots, outside the
// spawn schedule. It returns how many were spawned.
func (e *Emitter) Burst(n int) int {
	capacity := len(e.particles)
	spawned := 0
	for spawned < n && e.alive < capacity {
		for e.live[e.cursor] {
			e.cursor = (e.cursor + 1) % capacity
		}
		e.spawnAt(e.cursor)
		e.cursor = (e.cursor + 1) % capacity
		spawned++
	}
	return spawned
}

// Draw submits every live particle, offset by the emitter position unless
// the emitter is in world space.
func (e *Emitter) Draw(b Batch) {
	offset := e.Position
	if e.config.WorldSpace {
		offset = Vec2{}
	}
	if bs, ok := b.(BlendSetter); ok {
		bs.SetBlendMode(e.config.BlendMode)
	}
	for i := range e.particles {
		if e.live[i] {
			e.particles[i].Draw(b, offset)
		}
	}
}

// spawnAt re-initializes slot i from freshly sampled parameters and marks it
// live. Samples are drawn in a fixed order.
func (e *Emitter) spawnAt(i int) {
	cfg := &e.config
	rng := e.rng

	angle := sample(cfg.NoiseAngle, rng)
	dir := cfg.Direction.Rotate(angle).Normalize()
	speed := sample(cfg.Speed, rng)
	velocity := dir.Scale(speed)

	startScale := sample(cfg.StartScale, rng)
	endScale := sample(cfg.EndScale, rng)
	startColor := cfg.StartColor1.Lerp(cfg.StartColor2, rng.Float64())
	endColor := cfg.EndColor1.Lerp(cfg.EndColor2, rng.Float64())
	life := sample(cfg.Life, rng)
	mass := sample(cfg.Mass, rng)
	spin := sample(cfg.Spin, rng)

	sprite := cfg.Sprite
	sprite.Rotation = sample(cfg.Rotation, rng)
	if cfg.AlignRotation && (dir != Vec2{}) {
		sprite.Rotation += math.Atan2(dir.Y, dir.X)
	}

	pos := Vec2{sample(cfg.BoxX, rng), sample(cfg.BoxY, rng)}
	if cfg.WorldSpace {
		pos = pos.Add(e.Position)
	}

	e.particles[i].Init(sprite, ParticleSpawn{
		Position:      pos,
		Velocity:      velocity,
		Gravity:       e.Gravity,
		Wind:          e.Wind,
		ExternalForce: e.ExternalForce,
		Damping:       e.Damping,
		StartScale:    startScale,
		EndScale:      endScale,
		StartColor:    startColor,
		EndColor:      endColor,
		Life:          life,
		Mass:          mass,
		Spin:          spin,
		Ease:          cfg.Ease,
	})
	e.live[i] = true
	e.alive++
}
