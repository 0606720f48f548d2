// Package viewport maps the visible time window of the chart onto pixels.
package viewport

import (
	"fmt"
	"sync"

	"github.com/penwyp/go-power-overlay/internal/core/model"
)

// LevelConfigSource provides the active level line config.
type LevelConfigSource interface {
	Config() model.LevelConfig
}

// Viewport is the visible window [start, end] drawn across width pixels.
type Viewport struct {
	mu        sync.RWMutex
	levels    LevelConfigSource
	dataStart int64
	dataEnd   int64
	start     int64
	end       int64
	width     int
}

// New creates a Viewport showing the whole data extent [start, end].
func New(levels LevelConfigSource, start, end int64, width int) (*Viewport, error) {
	if width <= 0 {
		return nil, fmt.Errorf("viewport width must be positive, got %d", width)
	}
	if end < start {
		return nil, fmt.Errorf("viewport end %d before start %d", end, start)
	}
	return &Viewport{
		levels:    levels,
		dataStart: start,
		dataEnd:   end,
		start:     start,
		end:       end,
		width:     width,
	}, nil
}

// Resolution returns the ms of timeline per pixel, rounded up, at least 1.
func (v *Viewport) Resolution() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.resolution()
}

func (v *Viewport) resolution() int64 {
	span := v.end - v.start
	w := int64(v.width)
	res := (span + w - 1) / w
	if res < 1 {
		return 1
	}
	return res
}

// ActiveSignalConfig returns the config of the current level line.
func (v *Viewport) ActiveSignalConfig() model.LevelConfig {
	return v.levels.Config()
}

// Extent returns the visible window.
func (v *Viewport) Extent() (start, end int64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.start, v.end
}

func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// SetDataExtent changes the data bounds. A window showing the whole old
// extent grows to the new one; any other window is clamped.
func (v *Viewport) SetDataExtent(start, end int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if end < start {
		start, end = end, start
	}
	showingAll := v.start == v.dataStart && v.end == v.dataEnd
	v.dataStart, v.dataEnd = start, end
	if showingAll {
		v.start, v.end = start, end
		return
	}
	v.setWindow(v.start, v.end)
}

// SetWindow sets the visible window, clamped to the data extent.
func (v *Viewport) SetWindow(start, end int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setWindow(start, end)
}

func (v *Viewport) setWindow(start, end int64) {
	if end < start {
		start, end = end, start
	}
	span := end - start
	if span > v.dataEnd-v.dataStart {
		span = v.dataEnd - v.dataStart
	}
	if start < v.dataStart {
		start = v.dataStart
	}
	if start+span > v.dataEnd {
		start = v.dataEnd - span
	}
	v.start, v.end = start, start+span
}

// ZoomIn halves the visible span around its centre, down to 1 ms per pixel.
func (v *Viewport) ZoomIn() {
	v.mu.Lock()
	defer v.mu.Unlock()

	span := (v.end - v.start) / 2
	if span < int64(v.width) {
		span = min(int64(v.width), v.end-v.start)
	}
	centre := v.start + (v.end-v.start)/2
	v.setWindow(centre-span/2, centre-span/2+span)
}

// ZoomOut doubles the visible span around its centre, up to the data extent.
func (v *Viewport) ZoomOut() {
	v.mu.Lock()
	defer v.mu.Unlock()

	span := (v.end - v.start) * 2
	centre := v.start + (v.end-v.start)/2
	v.setWindow(centre-span/2, centre-span/2+span)
}

// Pan shifts the window by fraction of its span; negative moves left.
func (v *Viewport) Pan(fraction float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	shift := int64(float64(v.end-v.start) * fraction)
	v.setWindow(v.start+shift, v.end+shift)
}

// TimeToColumn maps ms to a pixel column. ok is false outside the window.
func (v *Viewport) TimeToColumn(ms int64) (col int, ok bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if ms < v.start || ms > v.end {
		return 0, false
	}
	col = int((ms - v.start) / v.resolution())
	if col >= v.width {
		col = v.width - 1
	}
	return col, true
}
