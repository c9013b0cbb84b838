package stats

import (
	"errors"
)

// ErrConstant is returned when a statistic is undefined for constant data.
var ErrConstant = errors.New("data has zero variance")

// Autocorrelation returns the sample autocorrelation of data for lags 0 to
// maxLag, normalized by the lag-0 sum of squares.
func Autocorrelation(data []float64, maxLag int) ([]float64, error) {
	n := len(data)
	if n < 2 {
		return nil, ErrWindow
	}
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		maxLag = 0
	}

	mean, err := Mean(data)
	if err != nil {
		return nil, err
	}
	ss := 0.0
	for _, v := range data {
		ss += (v - mean) * (v - mean)
	}
	if ss == 0 {
		return nil, ErrConstant
	}

	acf := make([]float64, maxLag+1)
	for k := range acf {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (data[i] - mean) * (data[i-k] - mean)
		}
		acf[k] = sum / ss
	}
	return acf, nil
}

// Lag1 returns the lag-1 autocorrelation of data. Values well above zero
// (red noise) make the t-test accept more shifts than p implies.
func Lag1(data []float64) (float64, error) {
	acf, err := Autocorrelation(data, 1)
	if err != nil {
		return 0, err
	}
	return acf[1], nil
}
