// Package overlay draws powermonitor activity for a selected wakeup reason on
// top of the level line chart.
package overlay

import (
	"fmt"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/core/sampler"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// Renderer decides whether the overlay applies and issues drawing commands.
// It keeps no state between renders apart from its collaborators.
type Renderer struct {
	config    Config
	viewport  ViewportQuery
	selection SelectionState
	source    EventSource
	surface   DrawingSurface
	sampler   Sampler
}

// New creates a Renderer, builds the selector once and subscribes to
// selection changes through notifier. config is validated and defaulted. A nil
// pointSampler uses the default min-gap sampler; notifier may be nil.
func New(config Config, viewport ViewportQuery, selection SelectionState, source EventSource,
	surface DrawingSurface, pointSampler Sampler, notifier ChangeNotifier) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid overlay config: %w", err)
	}
	if pointSampler == nil {
		pointSampler = sampler.New(0)
	}

	r := &Renderer{
		config:    config,
		viewport:  viewport,
		selection: selection,
		source:    source,
		surface:   surface,
		sampler:   pointSampler,
	}

	surface.RenderSelector(source.Categories())

	if notifier != nil {
		notifier.RegisterListener(func() {
			if err := r.Render(); err != nil {
				util.LogErrorf("Overlay render after selection change failed: %v", err)
			}
		})
	}

	return r, nil
}

// Render clears the overlay and redraws it from the collaborators' current state.
func (r *Renderer) Render() error {
	r.surface.Clear()

	signal := r.viewport.ActiveSignalConfig()
	if signal.Name != model.SignalPowermonitor {
		r.surface.ShowSelector(false)
		return nil
	}
	r.surface.ShowSelector(true)

	selected := r.selection.CurrentSelection()
	if selected == "" {
		return nil
	}

	msPerPixel := r.viewport.Resolution()

	groups, err := r.source.EventsFor(selected)
	if err != nil {
		return fmt.Errorf("failed to get power events for %q: %w", selected, err)
	}
	if len(groups) == 0 {
		util.LogDebugf("Overlay: no power events for %q", selected)
		return nil
	}

	zoomedOut := r.config.IsZoomedOut(msPerPixel)
	drawn := 0
	for _, group := range groups {
		points := group.Points()
		if zoomedOut {
			points = r.sampler.Sample(points, msPerPixel)
		}
		r.surface.Draw(points)
		drawn += len(points)
	}

	util.LogDebugf("Overlay: reason=%q groups=%d points=%d msPerPixel=%d sampled=%v",
		selected, len(groups), drawn, msPerPixel, zoomedOut)
	return nil
}
