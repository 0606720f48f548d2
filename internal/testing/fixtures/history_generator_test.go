package fixtures

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/data/parser"
)

func TestGenerateSimpleHistory(t *testing.T) {
	g := NewHistoryGenerator(t.TempDir())
	path, err := g.GenerateSimpleHistory("nested/history.jsonl", 1000)
	require.NoError(t, err)

	history, err := parser.NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, history.Powermonitor, 120)
	assert.Len(t, history.Wakeups, 2)
	assert.Len(t, history.BatteryLevel, 2)
	assert.Equal(t, "alarm", history.Wakeups[0].Reason)
	assert.Equal(t, float64(100), history.Powermonitor[0].Value)
}

func TestGenerateLargeHistory(t *testing.T) {
	g := NewHistoryGenerator(t.TempDir())
	path, err := g.GenerateLargeHistory("large.jsonl", 0, 3600, []string{"alarm", "wlan", "modem"})
	require.NoError(t, err)

	history, err := parser.NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, history.Powermonitor, 3600)
	assert.Len(t, history.Wakeups, 60)
	assert.Len(t, history.BatteryLevel, 6)
	assert.Equal(t, "modem", history.Wakeups[2].Reason)
}

func TestWriteAndAppendJSONL(t *testing.T) {
	g := NewHistoryGenerator(t.TempDir())
	path, err := g.WriteJSONL("h.jsonl", []model.Record{Reading(0, 10, 1.5)})
	require.NoError(t, err)
	require.NoError(t, g.AppendJSONL(path, Wakeup(0, 10, "alarm"), BatteryLevel(5, 42)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"metric":"powermonitor","start_time":0,"end_time":10,"value":1.5}`, lines[0])
	assert.JSONEq(t, `{"metric":"wakeup_reason","start_time":0,"end_time":10,"value":"alarm"}`, lines[1])
	assert.JSONEq(t, `{"metric":"battery_level","start_time":5,"end_time":5,"value":42}`, lines[2])
}
