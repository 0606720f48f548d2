package view

import (
	"context"
	"fmt"
	"io"

	"github.com/penwyp/go-power-overlay/internal/data/watcher"
	"github.com/penwyp/go-power-overlay/internal/presentation/interaction"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// Loop drives an App from keyboard and file events. Every event is handled on
// the goroutine calling Run, so renders never overlap.
type Loop struct {
	app   *App
	out   io.Writer
	keys  <-chan interaction.KeyEvent
	files <-chan watcher.FileEvent
}

// NewLoop creates a Loop. keys or files may be nil.
func NewLoop(app *App, out io.Writer, keys <-chan interaction.KeyEvent, files <-chan watcher.FileEvent) *Loop {
	return &Loop{app: app, out: out, keys: keys, files: files}
}

// Run draws the first frame and then redraws after every event until ctx is
// done, a quit key is pressed or both input channels are closed.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.redraw(); err != nil {
		return err
	}

	keys, files := l.keys, l.files
	for keys != nil || files != nil {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			action := interaction.ActionFor(event)
			if action == interaction.ActionQuit {
				return nil
			}
			changed, err := l.Apply(action)
			if err != nil {
				return err
			}
			if changed {
				if err := l.redraw(); err != nil {
					return err
				}
			}

		case event, ok := <-files:
			if !ok {
				files = nil
				continue
			}
			util.LogDebugf("History changed: %s %s", event.Operation, event.Path)
			if err := l.app.Reload(); err != nil {
				// Keep showing the last good frame; the next write retries.
				util.LogWarnf("Reload failed: %v", err)
				continue
			}
			if err := l.redraw(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Apply performs action on the app's collaborators and reports whether a
// redraw is needed.
func (l *Loop) Apply(action interaction.Action) (bool, error) {
	app := l.app
	switch action {
	case interaction.ActionZoomIn:
		app.Viewport().ZoomIn()
	case interaction.ActionZoomOut:
		app.Viewport().ZoomOut()
	case interaction.ActionPanLeft:
		app.Viewport().Pan(-0.25)
	case interaction.ActionPanRight:
		app.Viewport().Pan(0.25)
	case interaction.ActionNextReason:
		app.Selection().Cycle(app.source.Categories(), 1)
	case interaction.ActionPrevReason:
		app.Selection().Cycle(app.source.Categories(), -1)
	case interaction.ActionClearReason:
		app.Selection().Select("")
	case interaction.ActionToggleSignal:
		if err := app.Levels().Toggle(); err != nil {
			return false, fmt.Errorf("failed to toggle level line: %w", err)
		}
	default:
		return false, nil
	}
	return true, nil
}

func (l *Loop) redraw() error {
	if _, err := io.WriteString(l.out, util.ClearScreen+util.MoveCursorHome); err != nil {
		return err
	}
	if err := l.app.Render(l.out); err != nil {
		return err
	}
	_, err := io.WriteString(l.out, "\n[+/-] zoom  [h/l] pan  [n/p] reason  [0] none  [s] signal  [q] quit\n")
	return err
}
