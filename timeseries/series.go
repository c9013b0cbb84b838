// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"
)

var (
	// ErrLengthMismatch is returned when timestamps and values differ in length.
	ErrLengthMismatch = errors.New("timestamps and values must have the same length")
	// ErrNoData is returned for an empty series.
	ErrNoData = errors.New("series has no observations")
	// ErrNonFinite is returned when a series contains NaN or infinite values.
	ErrNonFinite = errors.New("series contains non-finite values")
	// ErrNoTimestamps is returned by calendar operations on an index-only series.
	ErrNoTimestamps = errors.New("series has no timestamps")
)

// Series represents a time series with optional timestamps and values.
// A series built with New has no timestamps; positions are its only index.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, ErrLengthMismatch
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether every value has a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Values) > 0 && len(s.Timestamps) == len(s.Values)
}

// Validate checks that the series is non-empty and every value is finite.
func (s *Series) Validate() error {
	if len(s.Values) == 0 {
		return ErrNoData
	}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: index %d is %v", ErrNonFinite, i, v)
		}
	}
	return nil
}

// Mean calculates the arithmetic mean of the series; 0 when empty.
func (s *Series) Mean() float64 {
	m, err := mstats.Mean(s.Values)
	if err != nil {
		return 0
	}
	return m
}

// Variance calculates the sample variance of the series; 0 below two values.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	v, err := mstats.SampleVariance(s.Values)
	if err != nil {
		return 0
	}
	return v
}

// Std calculates the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if len(s.Timestamps) > 0 {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Log applies natural logarithm transformation.
// Non-positive values become NaN; call Validate afterwards to reject them.
func (s *Series) Log() *Series {
	out := s.Copy()
	for i, v := range out.Values {
		if v > 0 {
			out.Values[i] = math.Log(v)
		} else {
			out.Values[i] = math.NaN()
		}
	}
	out.Name = s.Name + "_log"
	return out
}

// Normalize standardizes the series (z-score normalization).
func (s *Series) Normalize() *Series {
	mean := s.Mean()
	std := s.Std()

	if std == 0 {
		return s.Copy()
	}

	out := s.Copy()
	for i, v := range out.Values {
		out.Values[i] = (v - mean) / std
	}
	out.Name = s.Name + "_normalized"
	return out
}

// AggregateAnnual averages the observations of each calendar year.
// The result is ordered by year and stamped with January 1st of each year.
func AggregateAnnual(s *Series) (*Series, error) {
	if !s.HasTimestamps() {
		return nil, ErrNoTimestamps
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i, ts := range s.Timestamps {
		y := ts.Year()
		sums[y] += s.Values[i]
		counts[y]++
	}

	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)

	timestamps := make([]time.Time, len(years))
	values := make([]float64, len(years))
	for i, y := range years {
		timestamps[i] = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		values[i] = sums[y] / float64(counts[y])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name + "_annual",
	}, nil
}
