package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearFit(t *testing.T) {
	tests := []struct {
		name      string
		xs, ys    []float64
		slope     float64
		intercept float64
	}{
		{"exact line", []float64{1, 2, 3, 4}, []float64{3, 5, 7, 9}, 2, 1},
		{"flat", []float64{10, 20, 30}, []float64{5, 5, 5}, 0, 5},
		{"single point", []float64{7}, []float64{3}, 0, 3},
		{"empty", nil, nil, 0, 0},
		{"degenerate x", []float64{2, 2, 2}, []float64{1, 2, 3}, 0, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slope, intercept := LinearFit(tc.xs, tc.ys)
			assert.InDelta(t, tc.slope, slope, 1e-9)
			assert.InDelta(t, tc.intercept, intercept, 1e-9)
		})
	}
}

func TestRollingMean(t *testing.T) {
	in := []*float64{fptr(1), fptr(2), fptr(3), fptr(4), fptr(5)}
	out := RollingMean(in, 3)

	require.Len(t, out, 5)
	assert.Nil(t, out[0], "window extends before the series")
	assert.Nil(t, out[4], "window extends past the series")
	for i, want := range []float64{2, 3, 4} {
		require.NotNil(t, out[i+1])
		assert.InDelta(t, want, *out[i+1], 1e-9)
	}
}

func TestRollingMeanSkipsGaps(t *testing.T) {
	in := []*float64{fptr(1), nil, fptr(3), fptr(4), fptr(5)}
	out := RollingMean(in, 3)

	assert.Nil(t, out[1], "missing value inside the window")
	assert.Nil(t, out[2], "missing value inside the window")
	require.NotNil(t, out[3])
	assert.InDelta(t, 4, *out[3], 1e-9)
}

func TestAnyPtrsNullsMissing(t *testing.T) {
	out := anyPtrs([]*float64{fptr(1.5), nil, fptr(-2)})
	require.Len(t, out, 3)
	assert.Equal(t, 1.5, out[0])
	assert.Nil(t, out[1])
	assert.Equal(t, -2.0, out[2])
}
