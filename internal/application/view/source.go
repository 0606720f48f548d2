package view

import (
	"sync"

	"github.com/penwyp/go-power-overlay/internal/core/estimator"
	"github.com/penwyp/go-power-overlay/internal/core/overlay"
)

// reloadableSource lets the renderer keep one EventSource while the
// estimator behind it is rebuilt on reload.
type reloadableSource struct {
	mu        sync.RWMutex
	estimator *estimator.Estimator
}

func (s *reloadableSource) set(e *estimator.Estimator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.estimator = e
}

func (s *reloadableSource) get() *estimator.Estimator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.estimator
}

func (s *reloadableSource) EventsFor(key string) ([]overlay.EventGroup, error) {
	return s.get().EventsFor(key)
}

func (s *reloadableSource) Categories() []string {
	return s.get().Categories()
}
