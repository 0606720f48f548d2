// Package estimator attributes powermonitor readings to wakeup reasons.
package estimator

import (
	"fmt"
	"sort"

	"github.com/penwyp/go-power-overlay/internal/core/cache"
	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/core/overlay"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// ReasonSummary aggregates all wakeups of one reason.
type ReasonSummary struct {
	Reason   string  `json:"reason"`
	Count    int     `json:"count"`
	Duration int64   `json:"duration_ms"`
	Energy   float64 `json:"energy_mah"`
}

// Estimator groups powermonitor readings by wakeup event.
type Estimator struct {
	points      []model.Point
	wakeups     map[string][]model.WakeupEvent
	maxDuration int64
	events      *cache.MemoryCache[[]*Event]
}

// New creates an Estimator. Inputs are copied and sorted by start time.
func New(powermonitor []model.Point, wakeups []model.WakeupEvent) *Estimator {
	points := make([]model.Point, len(powermonitor))
	copy(points, powermonitor)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].StartTime < points[j].StartTime
	})

	var maxDuration int64
	for _, p := range points {
		maxDuration = max(maxDuration, p.Duration())
	}

	byReason := make(map[string][]model.WakeupEvent)
	for _, w := range wakeups {
		if w.Reason == "" {
			continue
		}
		byReason[w.Reason] = append(byReason[w.Reason], w)
	}
	for reason := range byReason {
		events := byReason[reason]
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].StartTime < events[j].StartTime
		})
	}

	util.LogDebug(fmt.Sprintf("Estimator: %d powermonitor readings, %d wakeup reasons", len(points), len(byReason)))

	return &Estimator{
		points:      points,
		wakeups:     byReason,
		maxDuration: maxDuration,
		events:      cache.NewMemoryCache[[]*Event]("power-events"),
	}
}

// EventsFor returns one group per wakeup of reason, in chronological order.
// Unknown reasons yield an empty list.
func (e *Estimator) EventsFor(reason string) ([]overlay.EventGroup, error) {
	events, err := e.Events(reason)
	if err != nil {
		return nil, err
	}
	groups := make([]overlay.EventGroup, len(events))
	for i, ev := range events {
		groups[i] = ev
	}
	return groups, nil
}

// Events returns the concrete events of reason.
func (e *Estimator) Events(reason string) ([]*Event, error) {
	return e.events.GetOrCompute(reason, func() ([]*Event, error) {
		wakeups := e.wakeups[reason]
		events := make([]*Event, 0, len(wakeups))
		for _, w := range wakeups {
			events = append(events, newEvent(w, e.pointsBetween(w.StartTime, w.EndTime)))
		}
		return events, nil
	})
}

// Categories returns the known reasons ordered by total energy, highest first.
func (e *Estimator) Categories() []string {
	summaries := e.Summaries()
	reasons := make([]string, len(summaries))
	for i, s := range summaries {
		reasons[i] = s.Reason
	}
	return reasons
}

// Summaries returns per-reason totals ordered by energy descending, then name.
func (e *Estimator) Summaries() []ReasonSummary {
	summaries := make([]ReasonSummary, 0, len(e.wakeups))
	for reason := range e.wakeups {
		events, _ := e.Events(reason)
		s := ReasonSummary{Reason: reason, Count: len(events)}
		for _, ev := range events {
			s.Duration += ev.Duration()
			s.Energy += ev.Energy()
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Energy != summaries[j].Energy {
			return summaries[i].Energy > summaries[j].Energy
		}
		return summaries[i].Reason < summaries[j].Reason
	})
	return summaries
}

// Reset drops memoised events.
func (e *Estimator) Reset() {
	e.events.Clear()
}

// pointsBetween returns readings overlapping [start, end].
func (e *Estimator) pointsBetween(start, end int64) []model.Point {
	// Readings starting before start-maxDuration cannot reach start.
	from := sort.Search(len(e.points), func(i int) bool {
		return e.points[i].StartTime >= start-e.maxDuration
	})

	var out []model.Point
	for _, p := range e.points[from:] {
		if p.StartTime > end {
			break
		}
		if p.Overlaps(start, end) {
			out = append(out, p)
		}
	}
	return out
}
