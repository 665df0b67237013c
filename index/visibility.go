package index

import (
	"maps"
	"slices"
	"sync"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
)

// VisibilitySnapshot is an immutable copy of the visibility settings.
// A name that was never set is visible.
type VisibilitySnapshot struct {
	settings map[define.ObjectKind]map[string]bool
}

// Visible reports whether instances of kind named name are shown.
func (s VisibilitySnapshot) Visible(kind define.ObjectKind, name string) bool {
	visible, ok := s.settings[kind][name]
	return !ok || visible
}

// Hidden returns the sorted names of kind that are hidden.
func (s VisibilitySnapshot) Hidden(kind define.ObjectKind) []string {
	var result []string
	for name, visible := range s.settings[kind] {
		if !visible {
			result = append(result, name)
		}
	}
	slices.Sort(result)
	return result
}

// Visibility holds whether each block name and each entity
// identifier is shown. Visibility belongs to the type: hiding
// minecraft:stone hides every stone voxel.
//
// Subscribers get a new snapshot each time a setting changes
// what is visible. They are called after the lock is released,
// in the goroutine that made the change.
type Visibility struct {
	mu          *sync.Mutex
	settings    map[define.ObjectKind]map[string]bool
	subscribers map[uint64]func(VisibilitySnapshot)
	nextID      uint64
}

// NewVisibility returns a Visibility where everything is shown.
func NewVisibility() *Visibility {
	return &Visibility{
		mu:          new(sync.Mutex),
		settings:    make(map[define.ObjectKind]map[string]bool),
		subscribers: make(map[uint64]func(VisibilitySnapshot)),
	}
}

// Visible reports whether instances of kind named name are shown.
func (v *Visibility) Visible(kind define.ObjectKind, name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	visible, ok := v.settings[kind][name]
	return !ok || visible
}

// Set shows or hides every instance of kind named name.
func (v *Visibility) Set(kind define.ObjectKind, name string, visible bool) {
	v.mu.Lock()

	before, ok := v.settings[kind][name]
	changed := (!ok || before) != visible

	if v.settings[kind] == nil {
		v.settings[kind] = make(map[string]bool)
	}
	v.settings[kind][name] = visible

	var snapshot VisibilitySnapshot
	var subscribers []func(VisibilitySnapshot)
	if changed {
		snapshot = v.snapshot()
		subscribers = v.subscriberList()
	}
	v.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

// Reset shows everything again.
func (v *Visibility) Reset() {
	v.mu.Lock()

	changed := false
	for _, names := range v.settings {
		for _, visible := range names {
			if !visible {
				changed = true
			}
		}
	}
	clear(v.settings)

	var snapshot VisibilitySnapshot
	var subscribers []func(VisibilitySnapshot)
	if changed {
		snapshot = v.snapshot()
		subscribers = v.subscriberList()
	}
	v.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

// Snapshot returns a copy of the current settings.
func (v *Visibility) Snapshot() VisibilitySnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

// Subscribe registers fn to be called with every new snapshot.
// The returned func removes fn again; calling it more than once
// does nothing.
func (v *Visibility) Subscribe(fn func(VisibilitySnapshot)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.subscribers[id] = fn

	return sync.OnceFunc(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subscribers, id)
	})
}

func (v *Visibility) snapshot() VisibilitySnapshot {
	result := VisibilitySnapshot{settings: make(map[define.ObjectKind]map[string]bool, len(v.settings))}
	for kind, names := range v.settings {
		result.settings[kind] = maps.Clone(names)
	}
	return result
}

func (v *Visibility) subscriberList() []func(VisibilitySnapshot) {
	ids := slices.Sorted(maps.Keys(v.subscribers))
	result := make([]func(VisibilitySnapshot), len(ids))
	for i, id := range ids {
		result[i] = v.subscribers[id]
	}
	return result
}
