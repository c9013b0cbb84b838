package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowVariances(t *testing.T) {
	data := []float64{1, 2, 3, 4, 10}

	pop, err := WindowVariances(data, 2, Population)
	require.NoError(t, err)
	// The last full window [4, 10] is excluded.
	assert.Equal(t, []float64{0.25, 0.25, 0.25}, pop)

	sample, err := WindowVariances(data, 2, Sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, sample)
}

func TestWindowVariancesBadWindow(t *testing.T) {
	data := []float64{1, 2, 3}

	for _, w := range []int{0, 1, 3, 4} {
		_, err := WindowVariances(data, w, Population)
		assert.ErrorIs(t, err, ErrWindow, "window=%d", w)
	}
}

func TestAverageWindowVariance(t *testing.T) {
	data := []float64{0, 0, 0, 4, 4, 4}

	// Windows of 3: [0 0 0], [0 0 4], [0 4 4]
	avg, err := AverageWindowVariance(data, 3, Population)
	require.NoError(t, err)

	want := (0 + 32.0/9 + 32.0/9) / 3
	assert.InDelta(t, want, avg, 1e-12)
}

func TestMean(t *testing.T) {
	m, err := Mean([]float64{-1, 0, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1, m, 1e-12)

	_, err = Mean(nil)
	assert.Error(t, err)
}

func TestTCritical(t *testing.T) {
	tests := []struct {
		p, df, want float64
	}{
		{0.05, 18, 1.7341},
		{0.01, 18, 2.5524},
		{0.05, 8, 1.8595},
		{0.975, 10, 2.2281},
		{0.5, 4, 0},
	}

	for _, tt := range tests {
		got, err := TCritical(tt.p, tt.df)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-3, "p=%v df=%v", tt.p, tt.df)
	}
}

func TestTCriticalInvalid(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, math.NaN()} {
		_, err := TCritical(p, 10)
		assert.Error(t, err, "p=%v", p)
	}
	_, err := TCritical(0.05, 0)
	assert.Error(t, err)
}

func TestParseEstimator(t *testing.T) {
	e, err := ParseEstimator("sample")
	require.NoError(t, err)
	assert.Equal(t, Sample, e)
	assert.Equal(t, "sample", e.String())

	e, err = ParseEstimator("")
	require.NoError(t, err)
	assert.Equal(t, Population, e)

	_, err = ParseEstimator("robust")
	assert.Error(t, err)
}
