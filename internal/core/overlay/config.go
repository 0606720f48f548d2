package overlay

import (
	"fmt"

	"github.com/penwyp/go-power-overlay/internal/core/constants"
)

// Config tunes the overlay renderer
type Config struct {
	// ZoomThreshold is the ms/pixel above which group points are sampled
	ZoomThreshold int64
}

// DefaultConfig returns the config used when nothing is overridden
func DefaultConfig() Config {
	return Config{ZoomThreshold: constants.DefaultZoomThresholdMsPerPixel}
}

// Validate fills defaults and rejects negative values
func (c *Config) Validate() error {
	if c.ZoomThreshold < 0 {
		return fmt.Errorf("zoom threshold must not be negative, got %d", c.ZoomThreshold)
	}
	if c.ZoomThreshold == 0 {
		c.ZoomThreshold = constants.DefaultZoomThresholdMsPerPixel
	}
	return nil
}

// IsZoomedOut reports whether msPerPixel is coarse enough to require sampling
func (c Config) IsZoomedOut(msPerPixel int64) bool {
	return msPerPixel > c.ZoomThreshold
}
