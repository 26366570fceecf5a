// Package surface provides an in-memory styled presentation surface. Hosts without a
// document model (the GLFW desktop window, tests) expose their layout regions as
// Surface values so the pose controller can take them over and restore them.
package surface

import (
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-pose/engine/pose"
)

// Surface is a named set of inline style properties. The zero value is not usable;
// create surfaces with New.
type Surface struct {
	mu     *sync.RWMutex
	name   string
	styles map[string]string

	onChange func(name, value string, present bool)
}

var _ pose.Surface = &Surface{}

// New creates a surface with optional initial styles.
//
// Parameters:
//   - name: identifier used in logs and lookups
//   - initial: style properties present before any takeover (may be nil)
//
// Returns:
//   - *Surface: the newly created surface
func New(name string, initial map[string]string) *Surface {
	s := &Surface{
		mu:     &sync.RWMutex{},
		name:   name,
		styles: make(map[string]string, len(initial)),
	}
	maps.Copy(s.styles, initial)
	return s
}

// Name returns the surface identifier.
func (s *Surface) Name() string {
	return s.name
}

func (s *Surface) Style(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.styles[name]
	return v, ok
}

func (s *Surface) SetStyle(name, value string) {
	s.mu.Lock()
	s.styles[name] = value
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb(name, value, true)
	}
}

func (s *Surface) RemoveStyle(name string) {
	s.mu.Lock()
	_, existed := s.styles[name]
	delete(s.styles, name)
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil && existed {
		cb(name, "", false)
	}
}

// Snapshot returns a copy of every style property currently set.
//
// Returns:
//   - map[string]string: property name to value
func (s *Surface) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.styles)
}

// Properties returns the names of all set properties in sorted order.
func (s *Surface) Properties() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.styles))
}

// SetChangeCallback sets the function called after every style mutation. present is
// false when a property was removed.
//
// Parameters:
//   - callback: function to call (or nil to disable)
func (s *Surface) SetChangeCallback(callback func(name, value string, present bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = callback
}
