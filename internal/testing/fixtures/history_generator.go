package fixtures

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-power-overlay/internal/core/model"
)

// Reading builds a powermonitor record
func Reading(start, end int64, current float64) model.Record {
	return model.Record{
		Metric:    model.MetricPowermonitor,
		StartTime: start,
		EndTime:   end,
		Value:     model.FlexibleValue{Number: current},
	}
}

// Wakeup builds a wakeup_reason record
func Wakeup(start, end int64, reason string) model.Record {
	return model.Record{
		Metric:    model.MetricWakeupReason,
		StartTime: start,
		EndTime:   end,
		Value:     model.FlexibleValue{Text: reason, IsText: true},
	}
}

// BatteryLevel builds a battery_level record
func BatteryLevel(at int64, level float64) model.Record {
	return model.Record{
		Metric:    model.MetricBatteryLevel,
		StartTime: at,
		EndTime:   at,
		Value:     model.FlexibleValue{Number: level},
	}
}

// Readings returns back-to-back readings of interval ms covering [start, start+span)
func Readings(start, span, interval int64, current func(offset int64) float64) []model.Record {
	records := make([]model.Record, 0, span/interval)
	for offset := int64(0); offset < span; offset += interval {
		records = append(records, Reading(start+offset, start+offset+interval, current(offset)))
	}
	return records
}

// HistoryGenerator writes history files for tests
type HistoryGenerator struct {
	baseDir string
}

// NewHistoryGenerator creates a generator writing under baseDir
func NewHistoryGenerator(baseDir string) *HistoryGenerator {
	return &HistoryGenerator{baseDir: baseDir}
}

// GetBaseDir returns the base directory
func (g *HistoryGenerator) GetBaseDir() string {
	return g.baseDir
}

// GenerateSimpleHistory writes one minute of readings every 500ms starting at
// start, an "alarm" wakeup over [start+10s, start+12s], a "wlan" wakeup over
// [start+40s, start+41s] and two battery levels.
// alarm carries more energy than wlan.
func (g *HistoryGenerator) GenerateSimpleHistory(filename string, start int64) (string, error) {
	records := Readings(start, 60_000, 500, func(offset int64) float64 {
		return float64(100 + offset%7000/10)
	})
	records = append(records,
		Wakeup(start+10_000, start+12_000, "alarm"),
		Wakeup(start+40_000, start+41_000, "wlan"),
		BatteryLevel(start, 90),
		BatteryLevel(start+30_000, 89),
	)
	return g.WriteJSONL(filename, records)
}

// GenerateLargeHistory writes numReadings one-second readings and one wakeup
// per reason every minute, cycling through reasons.
func (g *HistoryGenerator) GenerateLargeHistory(filename string, start int64, numReadings int, reasons []string) (string, error) {
	span := int64(numReadings) * 1000
	records := Readings(start, span, 1000, func(offset int64) float64 {
		return float64(50 + (offset/1000)%200)
	})
	for i, at := 0, start; at < start+span && len(reasons) > 0; i, at = i+1, at+60_000 {
		records = append(records, Wakeup(at, at+5_000, reasons[i%len(reasons)]))
	}
	for at := start; at < start+span; at += 600_000 {
		records = append(records, BatteryLevel(at, float64(100-(at-start)/600_000)))
	}
	return g.WriteJSONL(filename, records)
}

// WriteJSONL writes records to filename under the base directory, one per
// line, and returns the file path.
func (g *HistoryGenerator) WriteJSONL(filename string, records []model.Record) (string, error) {
	path := filepath.Join(g.baseDir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	var data []byte
	for _, record := range records {
		line, err := sonic.Marshal(record)
		if err != nil {
			return "", err
		}
		data = append(data, line...)
		data = append(data, '\n')
	}
	return path, os.WriteFile(path, data, 0644)
}

// AppendJSONL appends records to an existing file
func (g *HistoryGenerator) AppendJSONL(path string, records ...model.Record) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, record := range records {
		line, err := sonic.Marshal(record)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return nil
}
