package sampler

import (
	"testing"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func points(starts ...int64) []model.Point {
	out := make([]model.Point, len(starts))
	for i, s := range starts {
		out[i] = model.Point{StartTime: s, EndTime: s + 10, Value: 100}
	}
	return out
}

func TestSampleReducesDensePoints(t *testing.T) {
	s := New(1)

	sampled := s.Sample(points(1000, 1100), 2000)

	assert.Equal(t, []model.Point{{StartTime: 1000, EndTime: 1110, Value: 100}}, sampled)
}

func TestSampleFoldsDroppedSpans(t *testing.T) {
	s := New(1)
	input := []model.Point{
		{StartTime: 0, EndTime: 100, Value: 1},
		{StartTime: 500, EndTime: 600, Value: 2},
		{StartTime: 1000, EndTime: 1100, Value: 3},
		{StartTime: 1500, EndTime: 1600, Value: 4},
		{StartTime: 2000, EndTime: 1900, Value: 5},
	}

	sampled := s.Sample(input, 1250)

	assert.Equal(t, []model.Point{
		{StartTime: 0, EndTime: 1100, Value: 1},
		{StartTime: 1500, EndTime: 1900, Value: 4},
	}, sampled)
	assert.Equal(t, int64(100), input[0].EndTime)
}

func TestSampleKeepsSparsePoints(t *testing.T) {
	s := New(1)
	input := points(0, 5000, 10000)

	assert.Equal(t, input, s.Sample(input, 2000))
}

func TestSampleEdgeCases(t *testing.T) {
	s := New(1)

	tests := []struct {
		name       string
		input      []model.Point
		msPerPixel int64
		expected   []model.Point
	}{
		{name: "nil input", input: nil, msPerPixel: 2000, expected: []model.Point{}},
		{name: "single point", input: points(42), msPerPixel: 2000, expected: points(42)},
		{name: "zero resolution", input: points(1, 2, 3), msPerPixel: 0, expected: points(1, 2, 3)},
		{name: "duplicate timestamps", input: points(0, 0, 0, 3000), msPerPixel: 2000, expected: points(0, 3000)},
		{name: "all folded into first", input: points(0, 10, 20), msPerPixel: 2000, expected: []model.Point{{StartTime: 0, EndTime: 30, Value: 100}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Sample(tt.input, tt.msPerPixel))
		})
	}
}

func TestSampleDoesNotModifyInput(t *testing.T) {
	s := New(1)
	input := points(0, 10, 20, 30)
	snapshot := append([]model.Point(nil), input...)

	_ = s.Sample(input, 2000)

	assert.Equal(t, snapshot, input)
}

func TestSampleContract(t *testing.T) {
	s := New(2)
	var input []model.Point
	for i := int64(0); i < 500; i++ {
		// Irregular spacing so bucket boundaries do not line up.
		input = append(input, model.Point{StartTime: 1_000_000 + i*i*7 + i*13})
	}

	prevLen := len(input) + 1
	for _, res := range []int64{1, 10, 100, 1000, 2000, 5000, 60000, 3600000} {
		out := s.Sample(input, res)

		assert.LessOrEqual(t, len(out), prevLen, "resolution %d", res)
		prevLen = len(out)

		for i := 1; i < len(out); i++ {
			assert.LessOrEqual(t, out[i-1].StartTime, out[i].StartTime, "resolution %d not ordered", res)
		}
		for _, p := range out {
			assert.GreaterOrEqual(t, p.StartTime, input[0].StartTime)
			assert.LessOrEqual(t, p.StartTime, input[len(input)-1].StartTime)
		}
	}
}

func TestNewDefaultsPixelsPerSample(t *testing.T) {
	assert.Equal(t, int64(1), New(0).PixelsPerSample)
	assert.Equal(t, int64(1), New(-3).PixelsPerSample)
	assert.Equal(t, int64(4), New(4).PixelsPerSample)
}
