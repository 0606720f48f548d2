package overlay

import "github.com/penwyp/go-power-overlay/internal/core/model"

// ViewportQuery exposes the chart's current zoom and level line.
type ViewportQuery interface {
	// Resolution returns the milliseconds of timeline represented by one pixel
	Resolution() int64
	// ActiveSignalConfig returns the config of the series drawn as the level line
	ActiveSignalConfig() model.LevelConfig
}

// SelectionState exposes the category picked in the selector.
type SelectionState interface {
	// CurrentSelection returns the selected category key, or "" for none
	CurrentSelection() string
}

// EventGroup is one logical power event owning powermonitor points.
type EventGroup interface {
	// Points returns the group's powermonitor points in chronological order
	Points() []model.Point
}

// EventSource supplies power event groups per category.
type EventSource interface {
	// EventsFor returns the groups for key in order, or an empty list
	EventsFor(key string) ([]EventGroup, error)
	// Categories returns the keys offered by the selector
	Categories() []string
}

// DrawingSurface receives the overlay's drawing commands.
type DrawingSurface interface {
	// Clear erases previously drawn overlay content
	Clear()
	// Draw draws one group's point sequence
	Draw(points []model.Point)
	// ShowSelector toggles the category selector
	ShowSelector(visible bool)
	// RenderSelector builds the selector with the given options
	RenderSelector(options []string)
}

// Sampler reduces a dense point sequence for coarse resolutions.
type Sampler interface {
	Sample(points []model.Point, msPerPixel int64) []model.Point
}

// ChangeNotifier lets the renderer subscribe to selection changes.
type ChangeNotifier interface {
	RegisterListener(listener func())
}
