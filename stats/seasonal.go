package stats

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"

	"github.com/sartorproj/goregime/timeseries"
)

// SeasonalResult represents a seasonally standardized series.
type SeasonalResult struct {
	Original     *timeseries.Series
	Standardized *timeseries.Series
	SeasonMeans  []float64
	SeasonStds   []float64
	Period       int
	Logged       bool
}

// SeasonalStandardize removes the per-season mean from a series and divides by
// the per-season standard deviation. When logTransform is set the values are
// log-transformed first and must all be positive.
//
// A season is the calendar month when the series carries timestamps and
// period is 12, and the position modulo period otherwise. Seasons with zero
// spread are only centered.
func SeasonalStandardize(series *timeseries.Series, period int, logTransform bool) (*SeasonalResult, error) {
	if period < 1 {
		return nil, fmt.Errorf("seasonal period %d must be positive", period)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if series.Len() < period {
		return nil, fmt.Errorf("series of length %d is shorter than period %d", series.Len(), period)
	}

	src := series
	if logTransform {
		src = series.Log()
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("log transform: %w", err)
		}
	}

	monthly := period == 12 && src.HasTimestamps()
	season := func(i int) int {
		if monthly {
			return int(src.Timestamps[i].Month()) - 1
		}
		return i % period
	}

	// Step 1: Group values by season
	groups := make([][]float64, period)
	for i, v := range src.Values {
		s := season(i)
		groups[s] = append(groups[s], v)
	}

	// Step 2: Per-season mean and spread
	means := make([]float64, period)
	stds := make([]float64, period)
	for s, g := range groups {
		if len(g) == 0 {
			continue
		}
		m, err := mstats.Mean(g)
		if err != nil {
			return nil, err
		}
		means[s] = m
		if len(g) > 1 {
			sd, err := mstats.StandardDeviationSample(g)
			if err != nil {
				return nil, err
			}
			stds[s] = sd
		}
	}

	// Step 3: Standardize
	out := src.Copy()
	for i, v := range out.Values {
		s := season(i)
		z := v - means[s]
		if stds[s] > 0 {
			z /= stds[s]
		}
		out.Values[i] = z
	}
	out.Name = series.Name + "_standardized"

	return &SeasonalResult{
		Original:     series,
		Standardized: out,
		SeasonMeans:  means,
		SeasonStds:   stds,
		Period:       period,
		Logged:       logTransform,
	}, nil
}
