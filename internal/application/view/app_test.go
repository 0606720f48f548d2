package view

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = int64(1_600_000_000_000)

func historyLines() []string {
	var lines []string
	for t := int64(0); t < 60_000; t += 500 {
		lines = append(lines, fmt.Sprintf(`{"metric":"powermonitor","start_time":%d,"end_time":%d,"value":%d}`,
			base+t, base+t+500, 100+t%7000/10))
	}
	lines = append(lines,
		fmt.Sprintf(`{"metric":"wakeup_reason","start_time":%d,"end_time":%d,"value":"alarm"}`, base+10_000, base+12_000),
		fmt.Sprintf(`{"metric":"wakeup_reason","start_time":%d,"end_time":%d,"value":"wlan"}`, base+40_000, base+41_000),
		fmt.Sprintf(`{"metric":"battery_level","start_time":%d,"value":90}`, base),
		fmt.Sprintf(`{"metric":"battery_level","start_time":%d,"value":89}`, base+30_000),
	)
	return lines
}

func writeHistory(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func newTestApp(t *testing.T, signal, reason string) *App {
	t.Helper()
	app, err := NewApp(&ViewConfig{
		DataFile: writeHistory(t, historyLines()),
		Signal:   signal,
		Reason:   reason,
		Width:    20,
		Height:   5,
		Timezone: "UTC",
	})
	require.NoError(t, err)
	return app
}

func overlayCount(cols []bool) int {
	n := 0
	for _, c := range cols {
		if c {
			n++
		}
	}
	return n
}

func TestNewAppRendersSelectedReason(t *testing.T) {
	app := newTestApp(t, "powermonitor", "alarm")

	var buf bytes.Buffer
	require.NoError(t, app.Render(&buf))

	assert.Equal(t, int64(3000), app.Viewport().Resolution())
	assert.Equal(t, 1, app.Surface().DrawCalls())
	assert.True(t, app.Surface().SelectorVisible())
	assert.Positive(t, overlayCount(app.Surface().OverlayColumns()))
	assert.Contains(t, buf.String(), "[alarm]")
	assert.Contains(t, buf.String(), "Powermonitor (mA)")
}

func TestNewAppBatteryLevelHidesOverlay(t *testing.T) {
	app := newTestApp(t, "battery", "alarm")

	var buf bytes.Buffer
	require.NoError(t, app.Render(&buf))

	assert.Equal(t, 0, app.Surface().DrawCalls())
	assert.False(t, app.Surface().SelectorVisible())
	assert.NotContains(t, buf.String(), "Wakeup reason")
	assert.Contains(t, buf.String(), "Battery Level (%)")
}

func TestSelectionChangeRendersThroughListener(t *testing.T) {
	app := newTestApp(t, "powermonitor", "")

	app.Selection().Select("wlan")

	assert.Equal(t, 1, app.Surface().DrawCalls())
	cols := app.Surface().OverlayColumns()
	assert.True(t, cols[13], "wlan starts 40s into a 60s window over 20 columns")
}

func TestZoomedInDrawsEveryReading(t *testing.T) {
	app := newTestApp(t, "powermonitor", "alarm")
	app.Viewport().SetWindow(base+9_000, base+13_000)
	require.Equal(t, int64(200), app.Viewport().Resolution())

	var buf bytes.Buffer
	require.NoError(t, app.Render(&buf))

	// Readings 9500..12000 overlap the alarm and cover columns 2..17
	cols := app.Surface().OverlayColumns()
	assert.False(t, cols[1])
	assert.True(t, cols[2])
	assert.True(t, cols[17])
	assert.False(t, cols[18])
}

func TestSummaries(t *testing.T) {
	app := newTestApp(t, "powermonitor", "")

	summaries := app.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "alarm", summaries[0].Reason)
	assert.Equal(t, "wlan", summaries[1].Reason)
}

func TestReloadPicksUpNewReasons(t *testing.T) {
	lines := historyLines()
	path := writeHistory(t, lines)
	app, err := NewApp(&ViewConfig{DataFile: path, Width: 20, Height: 5, Timezone: "UTC"})
	require.NoError(t, err)

	lines = append(lines,
		fmt.Sprintf(`{"metric":"powermonitor","start_time":%d,"end_time":%d,"value":900}`, base+60_000, base+90_000),
		fmt.Sprintf(`{"metric":"wakeup_reason","start_time":%d,"end_time":%d,"value":"modem"}`, base+70_000, base+80_000))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	require.NoError(t, app.Reload())

	assert.Equal(t, "modem", app.Summaries()[0].Reason)
	_, end := app.Viewport().Extent()
	assert.Equal(t, base+90_000, end)

	app.Selection().Select("modem")
	assert.Equal(t, 1, app.Surface().DrawCalls())
}

func TestNewAppErrors(t *testing.T) {
	_, err := NewApp(&ViewConfig{})
	assert.Error(t, err)

	_, err = NewApp(&ViewConfig{DataFile: writeHistory(t, []string{`{"metric":"cpu"}`})})
	assert.ErrorContains(t, err, "no records")

	_, err = NewApp(&ViewConfig{DataFile: filepath.Join(t.TempDir(), "missing.jsonl")})
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := &ViewConfig{DataFile: "x.jsonl"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, model.SignalPowermonitor, cfg.SignalKind())
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 12, cfg.Height)
	assert.Equal(t, int64(1000), cfg.ZoomThreshold)
	assert.Equal(t, int64(1), cfg.PixelsPerSample)
	assert.Equal(t, "Local", cfg.Timezone)

	tests := []struct {
		name string
		cfg  ViewConfig
	}{
		{"unknown signal", ViewConfig{DataFile: "x", Signal: "voltage"}},
		{"narrow", ViewConfig{DataFile: "x", Width: 5}},
		{"short", ViewConfig{DataFile: "x", Height: 2}},
		{"negative threshold", ViewConfig{DataFile: "x", ZoomThreshold: -1}},
		{"inverted window", ViewConfig{DataFile: "x", StartTime: 10, EndTime: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestNewAppPersistsParsedHistory(t *testing.T) {
	cacheDir := t.TempDir()
	config := &ViewConfig{
		DataFile: writeHistory(t, historyLines()),
		CacheDir: cacheDir,
		Width:    20,
		Timezone: "UTC",
	}
	_, err := NewApp(config)
	require.NoError(t, err)

	entries, err := filepath.Glob(filepath.Join(cacheDir, "history-*.json"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// A second app loads the same history from the cache
	again, err := NewApp(config)
	require.NoError(t, err)
	assert.Len(t, again.Summaries(), 2)
}

func TestZoomedOutOverlayCoversEveryActiveColumn(t *testing.T) {
	var raw []model.Point
	var lines []string
	for at := base; at < base+60_000; at += 500 {
		raw = append(raw, model.Point{StartTime: at, EndTime: at + 100, Value: 200})
		lines = append(lines, fmt.Sprintf(`{"metric":"powermonitor","start_time":%d,"end_time":%d,"value":200}`,
			at, at+100))
	}
	lines = append(lines,
		fmt.Sprintf(`{"metric":"wakeup_reason","start_time":%d,"end_time":%d,"value":"alarm"}`, base, base+60_000))

	app, err := NewApp(&ViewConfig{
		DataFile: writeHistory(t, lines),
		Reason:   "alarm",
		Width:    48,
		Height:   5,
		Timezone: "UTC",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1250), app.Viewport().Resolution())

	var buf bytes.Buffer
	require.NoError(t, app.Render(&buf))
	sampled := app.Surface().OverlayColumns()

	app.Surface().Clear()
	app.Surface().Draw(raw)
	unsampled := app.Surface().OverlayColumns()

	assert.Equal(t, 48, overlayCount(unsampled))
	for col, on := range unsampled {
		if on {
			assert.True(t, sampled[col], "column %d has readings but is blank after sampling", col)
		}
	}
}

func TestRequestedWindowCanZoomOutToData(t *testing.T) {
	path := writeHistory(t, historyLines())
	app, err := NewApp(&ViewConfig{
		DataFile:  path,
		StartTime: base + 20_000,
		EndTime:   base + 30_000,
		Width:     20,
		Height:    5,
		Timezone:  "UTC",
	})
	require.NoError(t, err)

	start, end := app.Viewport().Extent()
	assert.Equal(t, base+20_000, start)
	assert.Equal(t, base+30_000, end)

	app.Viewport().ZoomOut()
	start, end = app.Viewport().Extent()
	assert.Equal(t, base+15_000, start)
	assert.Equal(t, base+35_000, end)

	require.NoError(t, app.Reload())
	start, end = app.Viewport().Extent()
	assert.Equal(t, base+15_000, start, "reload keeps the visible window")
	assert.Equal(t, base+35_000, end)

	app.Viewport().Pan(-10)
	start, end = app.Viewport().Extent()
	assert.Equal(t, base, start, "panning reaches data before the requested window")
	assert.Equal(t, base+20_000, end)
}
