package view

import (
	"fmt"

	"github.com/penwyp/go-power-overlay/internal/core/constants"
	"github.com/penwyp/go-power-overlay/internal/core/model"
)

// ViewConfig contains configuration for the overlay view
type ViewConfig struct {
	// Input
	DataFile string
	CacheDir string // parsed histories are persisted here; empty disables

	// Initial chart state
	Signal    string
	Reason    string
	StartTime int64 // ms since epoch, 0 = start of data
	EndTime   int64 // ms since epoch, 0 = end of data

	// Chart size
	Width  int
	Height int

	// Overlay tuning
	ZoomThreshold   int64
	PixelsPerSample int64

	// Display settings
	Timezone   string
	TimeFormat string
	Color      bool
}

// Validate fills defaults and checks the configuration
func (c *ViewConfig) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data file is required")
	}
	if c.Signal == "" {
		c.Signal = string(model.SignalPowermonitor)
	}
	if _, ok := model.ParseSignalKind(c.Signal); !ok {
		return fmt.Errorf("unknown signal %q (want %q or %q)", c.Signal, model.SignalPowermonitor, model.SignalBatteryLevel)
	}
	if c.Width == 0 {
		c.Width = constants.DefaultChartWidth
	}
	if c.Width < constants.MinChartWidth {
		return fmt.Errorf("width must be at least %d, got %d", constants.MinChartWidth, c.Width)
	}
	if c.Height == 0 {
		c.Height = constants.DefaultChartHeight
	}
	if c.Height < constants.MinChartHeight {
		return fmt.Errorf("height must be at least %d, got %d", constants.MinChartHeight, c.Height)
	}
	if c.ZoomThreshold < 0 {
		return fmt.Errorf("zoom threshold must not be negative, got %d", c.ZoomThreshold)
	}
	if c.ZoomThreshold == 0 {
		c.ZoomThreshold = constants.DefaultZoomThresholdMsPerPixel
	}
	if c.PixelsPerSample <= 0 {
		c.PixelsPerSample = constants.DefaultPixelsPerSample
	}
	if c.StartTime != 0 && c.EndTime != 0 && c.EndTime <= c.StartTime {
		return fmt.Errorf("end time %d must be after start time %d", c.EndTime, c.StartTime)
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "15:04:05"
	}
	return nil
}

// SignalKind returns the parsed initial signal
func (c *ViewConfig) SignalKind() model.SignalKind {
	kind, _ := model.ParseSignalKind(c.Signal)
	return kind
}
