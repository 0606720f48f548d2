// Package level holds the series that can be drawn as the chart's level line.
package level

import (
	"fmt"
	"sync"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// Data tracks the available level line series and which one is active.
type Data struct {
	mu        sync.RWMutex
	series    map[model.SignalKind][]model.LevelPoint
	active    model.SignalKind
	listeners []func()
}

// New creates Data with active as the initial level line.
func New(series map[model.SignalKind][]model.LevelPoint, active model.SignalKind) (*Data, error) {
	if _, ok := model.ConfigFor(active); !ok {
		return nil, fmt.Errorf("unknown level signal %q", active)
	}
	if series == nil {
		series = make(map[model.SignalKind][]model.LevelPoint)
	}
	return &Data{series: series, active: active}, nil
}

// Config returns the config of the active level line.
func (d *Data) Config() model.LevelConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cfg, _ := model.ConfigFor(d.active)
	return cfg
}

// Series returns the points of the active level line.
func (d *Data) Series() []model.LevelPoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.series[d.active]
}

// SetSeries replaces the points of all series without notifying listeners.
func (d *Data) SetSeries(series map[model.SignalKind][]model.LevelPoint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if series == nil {
		series = make(map[model.SignalKind][]model.LevelPoint)
	}
	d.series = series
}

// Available lists the known signals in display order.
func (d *Data) Available() []model.SignalKind {
	return model.KnownSignals()
}

// SetActive switches the level line and notifies listeners when it changed.
func (d *Data) SetActive(kind model.SignalKind) error {
	if _, ok := model.ConfigFor(kind); !ok {
		return fmt.Errorf("unknown level signal %q", kind)
	}

	d.mu.Lock()
	if d.active == kind {
		d.mu.Unlock()
		return nil
	}
	d.active = kind
	listeners := append([]func(){}, d.listeners...)
	d.mu.Unlock()

	util.LogDebugf("Level line switched to %s", kind)
	for _, l := range listeners {
		l()
	}
	return nil
}

// Toggle cycles to the next known signal.
func (d *Data) Toggle() error {
	known := model.KnownSignals()
	current := d.Config().Name
	for i, kind := range known {
		if kind == current {
			return d.SetActive(known[(i+1)%len(known)])
		}
	}
	return d.SetActive(known[0])
}

// RegisterListener adds a callback invoked after the active signal changes.
func (d *Data) RegisterListener(listener func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}
