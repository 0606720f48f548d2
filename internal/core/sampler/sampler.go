// Package sampler thins out dense powermonitor sequences for zoomed out views.
package sampler

import (
	"github.com/penwyp/go-power-overlay/internal/core/constants"
	"github.com/penwyp/go-power-overlay/internal/core/model"
)

// Sampler keeps at most one point per PixelsPerSample pixels of timeline.
type Sampler struct {
	PixelsPerSample int64
}

// New returns a Sampler. Non-positive pixelsPerSample falls back to the default.
func New(pixelsPerSample int64) *Sampler {
	if pixelsPerSample <= 0 {
		pixelsPerSample = constants.DefaultPixelsPerSample
	}
	return &Sampler{PixelsPerSample: pixelsPerSample}
}

// Sample returns a chronological subsequence of points where consecutive kept
// points start at least msPerPixel*PixelsPerSample apart. The first point is
// always kept. A dropped point is folded into the kept point before it, whose
// EndTime grows to cover it, so sampled points cover every column the input
// did. The input slice is not modified.
func (s *Sampler) Sample(points []model.Point, msPerPixel int64) []model.Point {
	gap := msPerPixel * s.pixelsPerSample()
	if len(points) <= 1 || gap <= 0 {
		out := make([]model.Point, len(points))
		copy(out, points)
		return out
	}

	out := make([]model.Point, 0, len(points)/2+1)
	out = append(out, points[0])
	last := points[0].StartTime
	for _, p := range points[1:] {
		if p.StartTime-last >= gap {
			out = append(out, p)
			last = p.StartTime
			continue
		}
		kept := &out[len(out)-1]
		kept.EndTime = max(kept.EndTime, p.EndTime)
	}
	return out
}

func (s *Sampler) pixelsPerSample() int64 {
	if s.PixelsPerSample <= 0 {
		return constants.DefaultPixelsPerSample
	}
	return s.PixelsPerSample
}
