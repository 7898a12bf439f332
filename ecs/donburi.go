package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/ember"
)

// EffectEventType is the Donburi event type for ember effect lifecycle events.
var EffectEventType = events.NewEventType[ember.EffectEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on EffectEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) ember.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event ember.EffectEvent) {
	EffectEventType.Publish(s.world, event)
}

// EmitterData attaches an emitter to an entity.
type EmitterData struct {
	Name    string
	Emitter *ember.Emitter
	// Persistent entities are kept after their emitter goes inactive.
	Persistent bool
}

// Emitter is the component type holding an entity's EmitterData.
var Emitter = donburi.NewComponentType[EmitterData]()

var emitterQuery = donburi.NewQuery(filter.Contains(Emitter))

// Spawn creates an entity carrying e.
func Spawn(world donburi.World, name string, e *ember.Emitter) donburi.Entity {
	entity := world.Create(Emitter)
	Emitter.SetValue(world.Entry(entity), EmitterData{Name: name, Emitter: e})
	EffectEventType.Publish(world, ember.EffectEvent{Type: ember.EffectAdded, Name: name, Emitter: e})
	return entity
}

// Update advances every entity's emitter by dt, then removes the entities
// whose non-persistent emitter is inactive, publishing EffectRetired for each.
func Update(world donburi.World, dt float64) {
	var retired []donburi.Entity
	emitterQuery.Each(world, func(entry *donburi.Entry) {
		d := Emitter.Get(entry)
		if d.Emitter == nil {
			return
		}
		d.Emitter.Update(dt)
		if !d.Persistent && d.Emitter.Inactive() {
			retired = append(retired, entry.Entity())
			EffectEventType.Publish(world, ember.EffectEvent{Type: ember.EffectRetired, Name: d.Name, Emitter: d.Emitter})
		}
	})
	for _, entity := range retired {
		world.Remove(entity)
	}
}

// Draw submits every entity's emitter to b.
func Draw(world donburi.World, b ember.Batch) {
	emitterQuery.Each(world, func(entry *donburi.Entry) {
		if d := Emitter.Get(entry); d.Emitter != nil {
			d.Emitter.Draw(b)
		}
	})
}
