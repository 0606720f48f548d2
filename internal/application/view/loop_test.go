package view

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/data/watcher"
	"github.com/penwyp/go-power-overlay/internal/presentation/interaction"
	"github.com/penwyp/go-power-overlay/internal/testing/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopAppliesKeysUntilQuit(t *testing.T) {
	app := newTestApp(t, "battery", "")
	keys := make(chan interaction.KeyEvent, 10)
	keys <- interaction.KeyEvent{Key: 's'}
	keys <- interaction.KeyEvent{Key: 'n'}
	keys <- interaction.KeyEvent{Key: '+'}
	keys <- interaction.KeyEvent{Key: 'q'}
	keys <- interaction.KeyEvent{Key: 'n'}

	var out bytes.Buffer
	loop := NewLoop(app, &out, keys, nil)
	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, model.SignalPowermonitor, app.Levels().Config().Name)
	assert.Equal(t, "alarm", app.Selection().CurrentSelection())
	assert.Equal(t, int64(1500), app.Viewport().Resolution())
	assert.Len(t, keys, 1, "keys after quit are not consumed")
	assert.Contains(t, out.String(), "[q] quit")

	visible := screen.Replay(out.String(), 24, 100)
	assert.Equal(t, "Powermonitor (mA)  1.5K ms/px", visible.Line(0), "only the last frame stays on screen")
	assert.False(t, visible.Contains("Battery Level"))
	assert.True(t, visible.Contains("[alarm]"))
}

func TestLoopStopsWhenInputsClose(t *testing.T) {
	app := newTestApp(t, "powermonitor", "")
	keys := make(chan interaction.KeyEvent)
	files := make(chan watcher.FileEvent)
	close(keys)
	close(files)

	var out bytes.Buffer
	require.NoError(t, NewLoop(app, &out, keys, files).Run(context.Background()))
	assert.Equal(t, 1, strings.Count(out.String(), "Powermonitor (mA)"))
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t, "powermonitor", "")
	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan interaction.KeyEvent)

	done := make(chan error, 1)
	go func() {
		done <- NewLoop(app, &bytes.Buffer{}, keys, nil).Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}

func TestLoopReloadsOnFileEvent(t *testing.T) {
	lines := historyLines()
	path := writeHistory(t, lines)
	app, err := NewApp(&ViewConfig{DataFile: path, Width: 20, Height: 5, Timezone: "UTC"})
	require.NoError(t, err)

	lines = append(lines, fmt.Sprintf(`{"metric":"wakeup_reason","start_time":%d,"end_time":%d,"value":"modem"}`, base+1_000, base+2_000))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	files := make(chan watcher.FileEvent, 1)
	files <- watcher.FileEvent{Path: path, Operation: "WRITE"}
	close(files)

	var out bytes.Buffer
	require.NoError(t, NewLoop(app, &out, nil, files).Run(context.Background()))

	assert.Len(t, app.Summaries(), 3)
	assert.Contains(t, out.String(), " modem ")
}

func TestApply(t *testing.T) {
	app := newTestApp(t, "powermonitor", "wlan")
	loop := NewLoop(app, &bytes.Buffer{}, nil, nil)

	changed, err := loop.Apply(interaction.ActionNone)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = loop.Apply(interaction.ActionPrevReason)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "alarm", app.Selection().CurrentSelection())

	_, err = loop.Apply(interaction.ActionClearReason)
	require.NoError(t, err)
	assert.Equal(t, "", app.Selection().CurrentSelection())

	_, err = loop.Apply(interaction.ActionZoomIn)
	require.NoError(t, err)
	_, err = loop.Apply(interaction.ActionPanRight)
	require.NoError(t, err)
	start, end := app.Viewport().Extent()
	assert.Equal(t, base+22_500, start)
	assert.Equal(t, base+52_500, end)
}
