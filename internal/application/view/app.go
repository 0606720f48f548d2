package view

import (
	"fmt"
	"io"

	"github.com/penwyp/go-power-overlay/internal/core/estimator"
	"github.com/penwyp/go-power-overlay/internal/core/level"
	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/core/overlay"
	"github.com/penwyp/go-power-overlay/internal/core/sampler"
	"github.com/penwyp/go-power-overlay/internal/core/selection"
	"github.com/penwyp/go-power-overlay/internal/core/viewport"
	"github.com/penwyp/go-power-overlay/internal/data/cache"
	"github.com/penwyp/go-power-overlay/internal/data/parser"
	"github.com/penwyp/go-power-overlay/internal/presentation/display"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// App wires a history file to the overlay renderer and a terminal surface
type App struct {
	config    *ViewConfig
	parser    *parser.Parser
	source    *reloadableSource
	levels    *level.Data
	viewport  *viewport.Viewport
	selection *selection.State
	surface   *display.TerminalSurface
	renderer  *overlay.Renderer
}

// NewApp loads config.DataFile and builds the chart collaborators
func NewApp(config *ViewConfig) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := util.InitializeTimeProvider(config.Timezone); err != nil {
		return nil, err
	}

	a := &App{
		config: config,
		parser: parser.NewParser(),
		source: &reloadableSource{},
	}
	if config.CacheDir != "" {
		disk, err := cache.NewFileCache(config.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache directory: %w", err)
		}
		a.parser.SetDiskCache(disk)
	}

	history, err := a.parser.ParseFile(config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	dataStart, dataEnd, err := a.extent(history)
	if err != nil {
		return nil, err
	}
	start, end, err := a.window(dataStart, dataEnd)
	if err != nil {
		return nil, err
	}

	a.source.set(estimator.New(history.Powermonitor, history.Wakeups))

	a.levels, err = level.New(levelSeries(history), config.SignalKind())
	if err != nil {
		return nil, err
	}
	a.viewport, err = viewport.New(a.levels, dataStart, dataEnd, config.Width)
	if err != nil {
		return nil, err
	}
	a.viewport.SetWindow(start, end)
	a.selection = selection.NewState(config.Reason)
	a.surface = display.NewTerminalSurface(display.SurfaceConfig{
		Height:     config.Height,
		Color:      config.Color,
		TimeFormat: config.TimeFormat,
	}, a.viewport, a.levels, a.selection)

	a.renderer, err = overlay.New(overlay.Config{ZoomThreshold: config.ZoomThreshold}, a.viewport,
		a.selection, a.source, a.surface, sampler.New(config.PixelsPerSample), a.selection)
	if err != nil {
		return nil, err
	}

	util.LogInfof("Loaded %s: %d powermonitor readings, %d wakeups, %d reasons",
		config.DataFile, len(history.Powermonitor), len(history.Wakeups), len(a.source.Categories()))
	return a, nil
}

// extent returns the time range covered by history
func (a *App) extent(history *model.History) (int64, int64, error) {
	start, end, ok := history.Extent()
	if !ok {
		return 0, 0, fmt.Errorf("no records found in %s", a.config.DataFile)
	}
	return start, end, nil
}

// window returns the initially visible window: the configured start and end,
// each falling back to the data extent when unset.
func (a *App) window(start, end int64) (int64, int64, error) {
	if a.config.StartTime != 0 {
		start = a.config.StartTime
	}
	if a.config.EndTime != 0 {
		end = a.config.EndTime
	}
	if end < start {
		return 0, 0, fmt.Errorf("time window [%d, %d] is empty", start, end)
	}
	return start, end, nil
}

// levelSeries builds the level line series of every known signal
func levelSeries(history *model.History) map[model.SignalKind][]model.LevelPoint {
	power := make([]model.LevelPoint, len(history.Powermonitor))
	for i, p := range history.Powermonitor {
		power[i] = model.LevelPoint{Time: p.StartTime, Value: p.Value}
	}
	return map[model.SignalKind][]model.LevelPoint{
		model.SignalPowermonitor: power,
		model.SignalBatteryLevel: history.BatteryLevel,
	}
}

// Reload re-reads the data file and swaps in the new data
func (a *App) Reload() error {
	history, err := a.parser.ParseFile(a.config.DataFile)
	if err != nil {
		return fmt.Errorf("failed to reload history: %w", err)
	}
	dataStart, dataEnd, err := a.extent(history)
	if err != nil {
		return err
	}

	est := estimator.New(history.Powermonitor, history.Wakeups)
	a.source.set(est)
	a.levels.SetSeries(levelSeries(history))
	a.viewport.SetDataExtent(dataStart, dataEnd)
	a.surface.RenderSelector(est.Categories())

	util.LogInfof("Reloaded %s", a.config.DataFile)
	return nil
}

// Render runs the overlay renderer and prints the frame to w
func (a *App) Render(w io.Writer) error {
	if err := a.renderer.Render(); err != nil {
		return err
	}
	return a.surface.Flush(w)
}

// Summaries returns per-reason totals of the loaded data
func (a *App) Summaries() []estimator.ReasonSummary {
	return a.source.get().Summaries()
}

func (a *App) Selection() *selection.State {
	return a.selection
}

func (a *App) Levels() *level.Data {
	return a.levels
}

func (a *App) Viewport() *viewport.Viewport {
	return a.viewport
}

func (a *App) Surface() *display.TerminalSurface {
	return a.surface
}
