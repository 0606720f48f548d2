package constants

const (
	// DefaultZoomThresholdMsPerPixel separates zoomed in views (every point drawn)
	// from zoomed out views (points sampled).
	DefaultZoomThresholdMsPerPixel = int64(1000)

	// DefaultPixelsPerSample is the minimum horizontal distance, in pixels,
	// between two sampled points.
	DefaultPixelsPerSample = int64(1)

	// Chart size fallbacks
	DefaultChartWidth  = 100
	DefaultChartHeight = 12
	MinChartWidth      = 20
	MinChartHeight     = 4

	// MsPerHour converts mA*ms into mAh.
	MsPerHour = float64(3600 * 1000)
)
