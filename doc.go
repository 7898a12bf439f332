// Package ember is a 2D particle engine for [Ebitengine].
//
// An [Emitter] owns a fixed pool of [Particle] slots, spawns into them on a
// randomized schedule and integrates every live particle once per frame.
// Nothing is allocated after construction: dead slots are reused in place.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	fx := ember.NewEffectSet()
//	fx.AddPersistent("sparks", ember.NewEmitter(ember.EmitterConfig{
//		Capacity:  200,
//		SpawnRate: ember.Range{Min: 0.01, Max: 0.02},
//		Life:      ember.Range{Min: 0.5, Max: 1.5},
//		Speed:     ember.Range{Min: 50, Max: 150},
//		Direction: ember.Vec2{X: 0, Y: -1},
//		Mass:      ember.Fixed(1),
//		Position:  ember.Vec2{X: 320, Y: 400},
//	}))
//	ember.Run(fx, ember.RunConfig{Title: "Sparks", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [EffectSet.Update] and [EffectSet.Draw] with an [ImageBatch]:
//
//	func (g *Game) Update() error { g.fx.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) {
//		g.batch.Begin(s)
//		g.fx.Draw(g.batch)
//		g.batch.End()
//	}
//
// # Frame order
//
// [Emitter.Update] runs the PreUpdate hook, spawns every particle whose
// interval has elapsed (dropping spawns while the pool is full), advances
// each live particle (forces, wind, damping, position, life) and then runs
// the PostUpdate hook. Draw submits each live particle through a [Batch]
// with its interpolated scale and color.
//
// # Profiles
//
// Emitters are usually described in YAML and loaded with [ParseProfiles] or
// [LoadProfiles]; see [Profile] for the format. Force strategies such as
// [WindGust], [TweenWind] (via [gween]) and [Vortex] plug into the
// PreUpdate and PostUpdate hooks.
//
// # Other backends
//
// Any [Batch] implementation can draw particles. Package ember/term renders
// them into a terminal through tcell, ember/tuning persists tuned forces and
// ember/ecs forwards effect events into a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package ember
