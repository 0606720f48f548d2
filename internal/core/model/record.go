package model

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Metric names used in data files.
const (
	MetricPowermonitor = "powermonitor"
	MetricWakeupReason = "wakeup_reason"
	MetricBatteryLevel = "battery_level"
)

// Record is one line of a JSONL history file.
type Record struct {
	Metric    string        `json:"metric"`
	StartTime int64         `json:"start_time"`
	EndTime   int64         `json:"end_time"`
	Value     FlexibleValue `json:"value"`
}

// FlexibleValue holds a value that is either a JSON number or a JSON string.
type FlexibleValue struct {
	Text   string
	Number float64
	IsText bool
}

func (fv *FlexibleValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := sonic.Unmarshal(data, &num); err == nil {
		*fv = FlexibleValue{Number: num, Text: strconv.FormatFloat(num, 'f', -1, 64)}
		return nil
	}

	var str string
	if err := sonic.Unmarshal(data, &str); err == nil {
		*fv = FlexibleValue{Text: str, IsText: true}
		if num, err := strconv.ParseFloat(str, 64); err == nil {
			fv.Number = num
		}
		return nil
	}

	return fmt.Errorf("value must be either number or string")
}

func (fv FlexibleValue) MarshalJSON() ([]byte, error) {
	if fv.IsText {
		return sonic.Marshal(fv.Text)
	}
	return sonic.Marshal(fv.Number)
}

// History is the decoded content of a data file.
type History struct {
	Powermonitor []Point       `json:"powermonitor"`
	Wakeups      []WakeupEvent `json:"wakeups"`
	BatteryLevel []LevelPoint  `json:"battery_level"`
}

// Extent returns the smallest and largest timestamps present in the history.
// ok is false when the history is empty.
func (h *History) Extent() (start, end int64, ok bool) {
	track := func(s, e int64) {
		if e < s {
			e = s
		}
		if !ok || s < start {
			start = s
		}
		if !ok || e > end {
			end = e
		}
		ok = true
	}
	for _, p := range h.Powermonitor {
		track(p.StartTime, p.EndTime)
	}
	for _, w := range h.Wakeups {
		track(w.StartTime, w.EndTime)
	}
	for _, l := range h.BatteryLevel {
		track(l.Time, l.Time)
	}
	return start, end, ok
}
