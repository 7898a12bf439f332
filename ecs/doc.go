// Package ecs connects ember effects to a [Donburi] world.
//
// [NewDonburiSink] forwards EffectSet lifecycle events (added, retired,
// removed) into the world as typed events. Subscribe to [EffectEventType] in
// your systems to receive them:
//
//	effects.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.EffectEventType.Subscribe(world, onEffect)
//
// Emitters can also live on entities through the [Emitter] component, in
// which case [Update] and [Draw] drive them and destroy the entity once its
// emitter goes inactive.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
