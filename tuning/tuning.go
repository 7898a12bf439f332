// Package tuning persists per-emitter force tweaks between runs using gdata,
// so values dialed in while an example is running survive a restart.
package tuning

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/ember"
)

// forcesObject is the gdata object every profile's forces are stored under;
// the profile name is the property.
const forcesObject = "forces"

// Store saves and loads ember.Forces keyed by profile name. A Store with no
// gdata manager keeps values in memory only, so callers work unchanged where
// no data directory is available.
type Store struct {
	manager *gdata.Manager
	memory  map[string]ember.Forces
}

// Open opens the data directory for appName. If it cannot be opened the
// error is logged and a memory-only Store is returned.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[tuning] data directory unavailable: %v (memory only)", err)
		return NewStore(nil)
	}
	return NewStore(m)
}

// NewStore wraps manager, which may be nil.
func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager, memory: make(map[string]ember.Forces)}
}

// Persistent reports whether saved values outlive the process.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Save stores f under name.
func (s *Store) Save(name string, f ember.Forces) error {
	if name == "" {
		return fmt.Errorf("tuning: empty profile name")
	}
	s.memory[name] = f
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal forces %q: %w", name, err)
	}
	if err := s.manager.SaveObjectProp(forcesObject, name, data); err != nil {
		return fmt.Errorf("save forces %q: %w", name, err)
	}
	return nil
}

// Load returns the forces saved under name. ok is false when nothing was
// saved, in which case the caller keeps its profile defaults.
func (s *Store) Load(name string) (f ember.Forces, ok bool, err error) {
	if f, ok := s.memory[name]; ok {
		return f, true, nil
	}
	if s.manager == nil || name == "" {
		return ember.Forces{}, false, nil
	}
	if !s.manager.ObjectPropExists(forcesObject, name) {
		return ember.Forces{}, false, nil
	}
	data, err := s.manager.LoadObjectProp(forcesObject, name)
	if err != nil {
		return ember.Forces{}, false, fmt.Errorf("load forces %q: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ember.Forces{}, false, fmt.Errorf("unmarshal forces %q: %w", name, err)
	}
	s.memory[name] = f
	return f, true, nil
}

// Apply loads the forces saved under name into e. It reports whether any
// were found; on error e is left unchanged.
func (s *Store) Apply(name string, e *ember.Emitter) (bool, error) {
	f, ok, err := s.Load(name)
	if err != nil || !ok {
		return false, err
	}
	e.SetForces(f)
	return true, nil
}
