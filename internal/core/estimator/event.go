package estimator

import (
	"github.com/penwyp/go-power-overlay/internal/core/constants"
	"github.com/penwyp/go-power-overlay/internal/core/model"
)

// Event is one wakeup instance together with the powermonitor readings that
// overlap it.
type Event struct {
	wakeup model.WakeupEvent
	points []model.Point
}

func newEvent(wakeup model.WakeupEvent, points []model.Point) *Event {
	return &Event{wakeup: wakeup, points: points}
}

// Points returns the overlapping powermonitor readings in chronological order.
func (e *Event) Points() []model.Point {
	return e.points
}

func (e *Event) Reason() string {
	return e.wakeup.Reason
}

func (e *Event) StartTime() int64 {
	return e.wakeup.StartTime
}

func (e *Event) EndTime() int64 {
	return e.wakeup.EndTime
}

// Duration returns the wakeup span in milliseconds.
func (e *Event) Duration() int64 {
	if e.wakeup.EndTime <= e.wakeup.StartTime {
		return 0
	}
	return e.wakeup.EndTime - e.wakeup.StartTime
}

// Energy returns the charge drawn during the wakeup in mAh. Readings that
// straddle the wakeup boundaries only count for the overlapping part.
func (e *Event) Energy() float64 {
	var total float64
	for _, p := range e.points {
		start := max(p.StartTime, e.wakeup.StartTime)
		end := min(p.EndTime, e.wakeup.EndTime)
		if end <= start {
			continue
		}
		total += p.Value * float64(end-start)
	}
	return total / constants.MsPerHour
}

// AverageCurrent returns the mean current in mA over the wakeup.
func (e *Event) AverageCurrent() float64 {
	d := e.Duration()
	if d == 0 {
		return 0
	}
	return e.Energy() * constants.MsPerHour / float64(d)
}
