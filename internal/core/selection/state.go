// Package selection holds the wakeup reason picked in the overlay selector.
package selection

import (
	"sync"

	"github.com/penwyp/go-power-overlay/internal/util"
)

// State stores the current category key; "" means nothing is selected.
type State struct {
	mu        sync.RWMutex
	selected  string
	listeners []func()
}

func NewState(initial string) *State {
	return &State{selected: initial}
}

// CurrentSelection returns the selected key or "".
func (s *State) CurrentSelection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select changes the selection. Listeners run only when the key changed.
func (s *State) Select(key string) {
	s.mu.Lock()
	if s.selected == key {
		s.mu.Unlock()
		return
	}
	s.selected = key
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	util.LogDebugf("Selection changed to %q", key)
	for _, l := range listeners {
		l()
	}
}

// Cycle moves the selection step positions through options, wrapping around.
// With no current selection, a positive step picks the first option and a
// negative one the last.
func (s *State) Cycle(options []string, step int) {
	if len(options) == 0 {
		s.Select("")
		return
	}

	current := s.CurrentSelection()
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}

	var next int
	switch {
	case idx < 0 && step >= 0:
		next = 0
	case idx < 0:
		next = len(options) - 1
	default:
		next = ((idx+step)%len(options) + len(options)) % len(options)
	}
	s.Select(options[next])
}

// RegisterListener adds a callback invoked after every selection change.
func (s *State) RegisterListener(listener func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}
