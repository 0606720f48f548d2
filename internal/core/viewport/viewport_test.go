package viewport

import (
	"testing"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLevels model.SignalKind

func (s staticLevels) Config() model.LevelConfig {
	return model.LevelConfig{Name: model.SignalKind(s)}
}

func TestNewValidates(t *testing.T) {
	_, err := New(staticLevels(model.SignalPowermonitor), 0, 100, 0)
	assert.Error(t, err)

	_, err = New(staticLevels(model.SignalPowermonitor), 100, 0, 10)
	assert.Error(t, err)
}

func TestResolution(t *testing.T) {
	tests := []struct {
		name     string
		start    int64
		end      int64
		width    int
		expected int64
	}{
		{"exact", 0, 100_000, 100, 1000},
		{"rounded up", 0, 100_001, 100, 1001},
		{"sub-millisecond", 0, 10, 100, 1},
		{"empty span", 5, 5, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(staticLevels(model.SignalPowermonitor), tt.start, tt.end, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.Resolution())
		})
	}
}

func TestActiveSignalConfig(t *testing.T) {
	v, err := New(staticLevels(model.SignalBatteryLevel), 0, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, model.SignalBatteryLevel, v.ActiveSignalConfig().Name)
}

func TestZoom(t *testing.T) {
	v, err := New(staticLevels(model.SignalPowermonitor), 0, 400_000, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), v.Resolution())

	v.ZoomIn()
	start, end := v.Extent()
	assert.Equal(t, int64(100_000), start)
	assert.Equal(t, int64(300_000), end)
	assert.Equal(t, int64(2000), v.Resolution())

	v.ZoomOut()
	v.ZoomOut()
	start, end = v.Extent()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(400_000), end, "zoom out is clamped to the data extent")
}

func TestZoomInStopsAtOneMsPerPixel(t *testing.T) {
	v, err := New(staticLevels(model.SignalPowermonitor), 0, 1000, 100)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}

	assert.Equal(t, int64(1), v.Resolution())
	start, end := v.Extent()
	assert.Equal(t, int64(100), end-start)
}

func TestPanClamps(t *testing.T) {
	v, err := New(staticLevels(model.SignalPowermonitor), 0, 1000, 10)
	require.NoError(t, err)
	v.SetWindow(400, 600)

	v.Pan(0.5)
	start, end := v.Extent()
	assert.Equal(t, int64(500), start)
	assert.Equal(t, int64(700), end)

	v.Pan(-10)
	start, end = v.Extent()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(200), end)
}

func TestTimeToColumn(t *testing.T) {
	v, err := New(staticLevels(model.SignalPowermonitor), 1000, 2000, 10)
	require.NoError(t, err)

	col, ok := v.TimeToColumn(1000)
	assert.True(t, ok)
	assert.Equal(t, 0, col)

	col, ok = v.TimeToColumn(1550)
	assert.True(t, ok)
	assert.Equal(t, 5, col)

	col, ok = v.TimeToColumn(2000)
	assert.True(t, ok)
	assert.Equal(t, 9, col)

	_, ok = v.TimeToColumn(999)
	assert.False(t, ok)
}

func TestSetDataExtent(t *testing.T) {
	v, err := New(staticLevels(model.SignalPowermonitor), 0, 1000, 10)
	require.NoError(t, err)

	v.SetDataExtent(0, 2000)
	start, end := v.Extent()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(2000), end, "full window follows the data")

	v.SetWindow(1500, 1900)
	v.SetDataExtent(0, 1000)
	start, end = v.Extent()
	assert.Equal(t, int64(600), start)
	assert.Equal(t, int64(1000), end, "partial window is clamped")
}

func TestZoomOutPastRequestedWindow(t *testing.T) {
	v, err := New(staticLevels(model.SignalPowermonitor), 0, 100_000, 10)
	require.NoError(t, err)
	v.SetWindow(20_000, 30_000)

	steps := [][2]int64{
		{15_000, 35_000},
		{5_000, 45_000},
		{0, 80_000},
		{0, 100_000},
		{0, 100_000},
	}
	for i, want := range steps {
		v.ZoomOut()
		start, end := v.Extent()
		assert.Equal(t, want[0], start, "step %d", i)
		assert.Equal(t, want[1], end, "step %d", i)
	}
}
