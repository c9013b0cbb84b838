package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}
}

func TestStdShortSeries(t *testing.T) {
	if got := New([]float64{3}).Std(); got != 0 {
		t.Errorf("Expected std 0 for a single value, got %f", got)
	}
	if got := New(nil).Variance(); got != 0 {
		t.Errorf("Expected variance 0 for an empty series, got %f", got)
	}
}

func TestStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := math.Sqrt(4.571428571428571)

	result := s.Std()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected std %f, got %f", expected, result)
	}
}

func TestLog(t *testing.T) {
	s := New([]float64{1, math.E, math.E * math.E})
	logged := s.Log()

	expected := []float64{0, 1, 2}
	for i, v := range logged.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestNormalize(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	normalized := s.Normalize()

	// Mean should be close to 0
	if math.Abs(normalized.Mean()) > 1e-10 {
		t.Errorf("Expected mean close to 0, got %f", normalized.Mean())
	}

	// Std should be close to 1
	if math.Abs(normalized.Std()-1) > 1e-10 {
		t.Errorf("Expected std close to 1, got %f", normalized.Std())
	}
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	copied := s.Copy()

	// Modify original
	s.Values[0] = 100

	// Copy should be unchanged
	if copied.Values[0] != 1 {
		t.Errorf("Copy was modified when original changed")
	}
}

func TestValidate(t *testing.T) {
	if err := New([]float64{1, 2}).Validate(); err != nil {
		t.Errorf("Expected valid series, got %v", err)
	}

	if err := New(nil).Validate(); !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := New([]float64{1, bad, 3}).Validate()
		if !errors.Is(err, ErrNonFinite) {
			t.Errorf("Expected ErrNonFinite for %v, got %v", bad, err)
		}
	}
}

func TestNewWithTimestampsMismatch(t *testing.T) {
	_, err := NewWithTimestamps([]time.Time{time.Now()}, []float64{1, 2})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestAggregateAnnual(t *testing.T) {
	var ts []time.Time
	var values []float64
	for y := 2000; y <= 2002; y++ {
		for m := time.January; m <= time.December; m++ {
			ts = append(ts, time.Date(y, m, 1, 0, 0, 0, 0, time.UTC))
			values = append(values, float64(y-2000)*10+float64(m))
		}
	}
	s, _ := NewWithTimestamps(ts, values)

	annual, err := AggregateAnnual(s)
	if err != nil {
		t.Fatalf("AggregateAnnual failed: %v", err)
	}

	expected := []float64{6.5, 16.5, 26.5}
	if annual.Len() != len(expected) {
		t.Fatalf("Expected %d years, got %d", len(expected), annual.Len())
	}
	for i, v := range annual.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Year %d: expected %f, got %f", 2000+i, expected[i], v)
		}
		if annual.Timestamps[i].Year() != 2000+i {
			t.Errorf("Expected year %d, got %d", 2000+i, annual.Timestamps[i].Year())
		}
	}

	if _, err := AggregateAnnual(New([]float64{1, 2})); !errors.Is(err, ErrNoTimestamps) {
		t.Errorf("Expected ErrNoTimestamps, got %v", err)
	}
}
