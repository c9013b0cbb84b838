package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sartorproj/goregime/internal/config"
	"github.com/sartorproj/goregime/stats"
	"github.com/sartorproj/goregime/timeseries"
)

// loadSeries reads the configured input file.
func loadSeries(in config.InputConfig) (*timeseries.Series, error) {
	if in.Path == "" {
		return nil, fmt.Errorf("no input file: pass one as an argument or with --input")
	}

	opts := timeseries.DefaultOptions()
	opts.ValueColumn = in.Column
	opts.DateColumn = in.DateColumn
	opts.Sheet = in.Sheet

	format := strings.ToLower(in.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(in.Path)), ".")
	}

	var (
		series *timeseries.Series
		err    error
	)
	switch format {
	case "xlsx", "xlsm":
		series, err = timeseries.LoadXLSX(in.Path, opts)
	default:
		series, err = timeseries.LoadCSV(in.Path, opts)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", in.Path).
		Str("column", series.Name).
		Int("n", series.Len()).
		Bool("dated", series.HasTimestamps()).
		Msg("series loaded")
	return series, nil
}

// prepare applies the configured transforms in order: seasonal
// standardization (log-transforming first when asked), annual means, z-scores.
func prepare(series *timeseries.Series, prep config.PrepConfig) (*timeseries.Series, error) {
	switch {
	case prep.Period > 0:
		res, err := stats.SeasonalStandardize(series, prep.Period, prep.Log)
		if err != nil {
			return nil, fmt.Errorf("seasonal standardization: %w", err)
		}
		log.Debug().Int("period", prep.Period).Bool("log", prep.Log).Floats64("season_means", res.SeasonMeans).Msg("standardized")
		series = res.Standardized
	case prep.Log:
		series = series.Log()
		if err := series.Validate(); err != nil {
			return nil, fmt.Errorf("log transform: %w", err)
		}
	}

	if prep.Annual {
		annual, err := timeseries.AggregateAnnual(series)
		if err != nil {
			return nil, fmt.Errorf("annual aggregation: %w", err)
		}
		log.Debug().Int("years", annual.Len()).Msg("aggregated to annual means")
		series = annual
	}

	if prep.Normalize {
		series = series.Normalize()
	}

	if prep.Save != "" {
		if err := timeseries.SaveCSV(series, prep.Save); err != nil {
			return nil, fmt.Errorf("save prepared series: %w", err)
		}
		log.Info().Str("path", prep.Save).Int("n", series.Len()).Msg("prepared series saved")
	}

	return series, nil
}

// openOutput returns stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
