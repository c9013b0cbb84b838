// Package sweep runs the regime shift detector over a range of minimum
// regime lengths and counts how often each index is found.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/goregime/regime"
	"github.com/sartorproj/goregime/stats"
)

// ErrNoTrials is returned when no length in the range could be tested.
var ErrNoTrials = errors.New("no regime length in range could be tested")

// Config holds configuration for a sensitivity sweep.
type Config struct {
	MinLength   int             // Smallest l tried (default: 5)
	MaxLength   int             // Largest l tried, inclusive (default: 35)
	Probability float64         // Significance probability shared by all trials (default: 0.05)
	Variance    stats.Estimator // Window variance estimator
	Mode        regime.Mode     // Scan convention
	Workers     int             // Concurrent trials; 0 means GOMAXPROCS
}

// DefaultConfig returns the default sweep configuration.
func DefaultConfig() *Config {
	return &Config{
		MinLength:   5,
		MaxLength:   35,
		Probability: 0.05,
		Variance:    stats.Population,
		Mode:        regime.Standard,
	}
}

// Validate checks the range and shared parameters.
func (c *Config) Validate() error {
	if c.MinLength < 2 {
		return fmt.Errorf("minimum length %d must be at least 2", c.MinLength)
	}
	if c.MaxLength < c.MinLength {
		return fmt.Errorf("maximum length %d is below minimum length %d", c.MaxLength, c.MinLength)
	}
	if !(c.Probability > 0 && c.Probability < 1) {
		return fmt.Errorf("probability %v must lie in (0, 1)", c.Probability)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative", c.Workers)
	}
	return nil
}

// Trial is one detector run at a fixed minimum regime length.
type Trial struct {
	Length int
	Result *regime.Result
	Err    error // Set when this length was skipped
}

// Skipped reports whether the trial produced no result.
func (t Trial) Skipped() bool {
	return t.Err != nil
}

// Result represents the outcome of a sweep.
type Result struct {
	// Trials are ordered by Length.
	Trials []Trial
	// Frequency counts, per index, the trials that accepted a shift there.
	Frequency []int
	// Completed is the number of trials that were not skipped.
	Completed int
}

// Consensus returns the indices found by at least minCount trials, ascending.
func (r *Result) Consensus(minCount int) []int {
	if minCount < 1 {
		minCount = 1
	}
	out := []int{}
	for i, c := range r.Frequency {
		if c >= minCount {
			out = append(out, i)
		}
	}
	return out
}

// Run executes one detection per length in [MinLength, MaxLength]. Each trial
// owns its own detector state. Lengths the series is too short for are
// recorded as skipped; degenerate input aborts the sweep.
//
// Progress is logged at debug level to the logger attached to ctx.
func Run(ctx context.Context, data []float64, config *Config) (*Result, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	workers := config.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trials := make([]Trial, config.MaxLength-config.MinLength+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range trials {
		i := i
		l := config.MinLength + i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			det := regime.New(&regime.Config{
				MinLength:   l,
				Probability: config.Probability,
				Variance:    config.Variance,
				Mode:        config.Mode,
			})
			res, err := det.Detect(data)
			trials[i] = Trial{Length: l, Result: res, Err: err}

			switch {
			case err == nil:
				logger.Debug().Int("l", l).Ints("shifts", res.Shifts).Msg("trial complete")
			case errors.Is(err, regime.ErrDegenerateInput):
				return err
			default:
				logger.Debug().Int("l", l).Err(err).Msg("trial skipped")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	result := &Result{
		Trials:    trials,
		Frequency: make([]int, len(data)),
	}
	for _, t := range trials {
		if t.Skipped() {
			continue
		}
		result.Completed++
		for _, s := range t.Result.Shifts {
			result.Frequency[s]++
		}
	}
	if result.Completed == 0 {
		return nil, fmt.Errorf("sweep l=%d..%d over %d points: %w",
			config.MinLength, config.MaxLength, len(data), ErrNoTrials)
	}

	return result, nil
}
