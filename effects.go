package ember

import (
	"time"
)

// EffectEventType identifies what happened to an effect in an EffectSet.
type EffectEventType uint8

const (
	EffectAdded   EffectEventType = iota // an emitter joined the set
	EffectRetired                        // an inactive emitter was dropped by Update
	EffectRemoved                        // an emitter was removed by Remove or Clear
)

// EffectEvent carries one effect lifecycle change to an EventSink.
type EffectEvent struct {
	Type    EffectEventType
	Name    string
	Emitter *Emitter
}

// EventSink receives effect lifecycle events, e.g. to forward them to an ECS.
type EventSink interface {
	EmitEvent(event EffectEvent)
}

type effect struct {
	name       string
	emitter    *Emitter
	persistent bool
}

// EffectSet owns the emitters of a screen. It updates and draws them once per
// frame and drops each one once it reports Inactive, unless it was added as
// persistent.
type EffectSet struct {
	effects []effect
	sink    EventSink
	debug   bool
	stats   debugStats
}

const defaultEffectCap = 16

// NewEffectSet creates an empty EffectSet.
func NewEffectSet() *EffectSet {
	return &EffectSet{effects: make([]effect, 0, defaultEffectCap)}
}

// Add puts e into the set under name. It is retired once Inactive.
// Names need not be unique.
func (s *EffectSet) Add(name string, e *Emitter) {
	s.add(name, e, false)
}

// AddPersistent puts e into the set under name. It stays until Remove or
// Clear, so it can be restarted after going quiet.
func (s *EffectSet) AddPersistent(name string, e *Emitter) {
	s.add(name, e, true)
}

func (s *EffectSet) add(name string, e *Emitter, persistent bool) {
	s.effects = append(s.effects, effect{name: name, emitter: e, persistent: persistent})
	s.emit(EffectAdded, name, e)
}

// Get returns the first emitter added under name.
func (s *EffectSet) Get(name string) (*Emitter, bool) {
	for i := range s.effects {
		if s.effects[i].name == name {
			return s.effects[i].emitter, true
		}
	}
	return nil, false
}

// Remove drops every emitter added under name, killing its particles.
// It returns how many were removed.
func (s *EffectSet) Remove(name string) int {
	n := 0
	kept := s.effects[:0]
	for _, fx := range s.effects {
		if fx.name == name {
			fx.emitter.Clear()
			s.emit(EffectRemoved, fx.name, fx.emitter)
			n++
			continue
		}
		kept = append(kept, fx)
	}
	s.dropTail(len(kept))
	return n
}

// Clear kills every particle and empties the set.
func (s *EffectSet) Clear() {
	for _, fx := range s.effects {
		fx.emitter.Clear()
		s.emit(EffectRemoved, fx.name, fx.emitter)
	}
	s.dropTail(0)
}

// Len returns the number of emitters in the set.
func (s *EffectSet) Len() int {
	return len(s.effects)
}

// AliveParticles returns the live particle count across all emitters.
func (s *EffectSet) AliveParticles() int {
	n := 0
	for i := range s.effects {
		n += s.effects[i].emitter.AliveCount()
	}
	return n
}

// Update advances every emitter by dt seconds, then retires the inactive
// ones in place.
func (s *EffectSet) Update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	for i := range s.effects {
		s.effects[i].emitter.Update(dt)
	}

	retired := 0
	kept := s.effects[:0]
	for _, fx := range s.effects {
		if !fx.persistent && fx.emitter.Inactive() {
			s.emit(EffectRetired, fx.name, fx.emitter)
			retired++
			continue
		}
		kept = append(kept, fx)
	}
	s.dropTail(len(kept))

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		s.stats.retired = retired
	}
}

// Draw submits every emitter's live particles to b, in insertion order.
func (s *EffectSet) Draw(b Batch) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	for i := range s.effects {
		s.effects[i].emitter.Draw(b)
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.emitters = len(s.effects)
		s.stats.particles = 0
		s.stats.capacity = 0
		for i := range s.effects {
			s.stats.particles += s.effects[i].emitter.AliveCount()
			s.stats.capacity += s.effects[i].emitter.Capacity()
		}
		s.debugLog(s.stats)
	}
}

// SetEventSink sets the optional receiver of effect lifecycle events.
func (s *EffectSet) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, emitters check
// their pool bookkeeping after every update and per-frame timing stats are
// logged to stderr.
func (s *EffectSet) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// dropTail truncates the effect list to n, clearing the vacated entries so
// retired emitters can be collected.
func (s *EffectSet) dropTail(n int) {
	for i := n; i < len(s.effects); i++ {
		s.effects[i] = effect{}
	}
	s.effects = s.effects[:n]
}

func (s *EffectSet) emit(t EffectEventType, name string, e *Emitter) {
	if s.sink != nil {
		s.sink.EmitEvent(EffectEvent{Type: t, Name: name, Emitter: e})
	}
}
