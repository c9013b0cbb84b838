package stats

import (
	"errors"
	"fmt"

	mstats "github.com/montanaflynn/stats"
)

// Estimator selects the divisor used for a window variance.
type Estimator int

const (
	// Population divides by the window length.
	Population Estimator = iota
	// Sample divides by the window length minus one.
	Sample
)

// String returns the estimator name used in configuration files.
func (e Estimator) String() string {
	switch e {
	case Sample:
		return "sample"
	default:
		return "population"
	}
}

// ParseEstimator parses "population" or "sample". The empty string maps to Population.
func ParseEstimator(s string) (Estimator, error) {
	switch s {
	case "", "population", "pop":
		return Population, nil
	case "sample":
		return Sample, nil
	}
	return Population, fmt.Errorf("unknown variance estimator %q", s)
}

// ErrWindow is returned when a window length does not fit the data.
var ErrWindow = errors.New("window length must be in [2, len(data))")

// Mean returns the arithmetic mean of data.
func Mean(data []float64) (float64, error) {
	return mstats.Mean(data)
}

// Variance returns the variance of data using the given estimator.
func Variance(data []float64, est Estimator) (float64, error) {
	if est == Sample {
		return mstats.SampleVariance(data)
	}
	return mstats.PopulationVariance(data)
}

// WindowVariances computes the variance of every window data[i:i+window]
// for i in [0, len(data)-window). The final full window is not included.
func WindowVariances(data []float64, window int, est Estimator) ([]float64, error) {
	n := len(data)
	if window < 2 || window >= n {
		return nil, ErrWindow
	}

	variances := make([]float64, 0, n-window)
	for i := 0; i < n-window; i++ {
		v, err := Variance(data[i:i+window], est)
		if err != nil {
			return nil, err
		}
		variances = append(variances, v)
	}
	return variances, nil
}

// AverageWindowVariance is the mean of WindowVariances. Regimes are assumed to
// share this variance.
func AverageWindowVariance(data []float64, window int, est Estimator) (float64, error) {
	variances, err := WindowVariances(data, window, est)
	if err != nil {
		return 0, err
	}
	return mstats.Mean(variances)
}
