package pose

import "sync"

type listenerEntry struct {
	kind     EventKind
	target   Surface
	listener Listener
}

// Dispatcher is a listener registry that Platform implementations can embed.
// Registrations are keyed by (kind, target, listener) identity. Dispatch copies the
// matching listeners under the lock and invokes them after releasing it, so a
// listener may add or remove registrations while handling an event.
type Dispatcher struct {
	mu      sync.Mutex
	entries []listenerEntry
}

// Add registers l for kind on target. Duplicate registrations are ignored.
//
// Parameters:
//   - kind: the event kind
//   - target: the bound surface, or nil for global scope
//   - l: the listener
func (d *Dispatcher) Add(kind EventKind, target Surface, l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e := listenerEntry{kind: kind, target: target, listener: l}
	for _, existing := range d.entries {
		if existing == e {
			return
		}
	}
	d.entries = append(d.entries, e)
}

// Remove unregisters the (kind, target, l) registration if present.
//
// Parameters:
//   - kind: the event kind
//   - target: the bound surface, or nil for global scope
//   - l: the listener
func (d *Dispatcher) Remove(kind EventKind, target Surface, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := listenerEntry{kind: kind, target: target, listener: l}
	for i, existing := range d.entries {
		if existing == e {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every listener registered for its kind either globally or
// on target.
//
// Parameters:
//   - target: the surface the event originated from, or nil for a global event
//   - ev: the event
//
// Returns:
//   - int: number of listeners invoked
func (d *Dispatcher) Dispatch(target Surface, ev Event) int {
	d.mu.Lock()
	var matched []Listener
	for _, e := range d.entries {
		if e.kind != ev.Kind() {
			continue
		}
		if e.target != nil && e.target != target {
			continue
		}
		matched = append(matched, e.listener)
	}
	d.mu.Unlock()

	for _, l := range matched {
		l.HandleEvent(ev)
	}
	return len(matched)
}

// Len returns the number of live registrations.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
