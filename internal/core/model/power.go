package model

// Point is a single powermonitor reading. Times are milliseconds since epoch,
// Value is the current draw in mA over [StartTime, EndTime].
type Point struct {
	StartTime int64   `json:"start_time"`
	EndTime   int64   `json:"end_time"`
	Value     float64 `json:"value"`
}

// Duration returns the reading's span in milliseconds.
func (p Point) Duration() int64 {
	if p.EndTime <= p.StartTime {
		return 0
	}
	return p.EndTime - p.StartTime
}

// Overlaps reports whether the reading intersects the closed interval [start, end].
func (p Point) Overlaps(start, end int64) bool {
	pointEnd := p.EndTime
	if pointEnd < p.StartTime {
		pointEnd = p.StartTime
	}
	return p.StartTime <= end && pointEnd >= start
}

// WakeupEvent is one instance of the device being woken for Reason.
type WakeupEvent struct {
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Reason    string `json:"reason"`
}

// LevelPoint is a sample of a level line series.
type LevelPoint struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}
