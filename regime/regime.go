// Package regime implements Rodionov's sequential regime shift detection.
package regime

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/sartorproj/goregime/stats"
)

// Mode selects the scan convention.
type Mode int

const (
	// Standard starts testing at index l, resumes right after each candidate
	// and folds rejected candidates back into the running mean.
	Standard Mode = iota
	// Reference reproduces the published STARS script: testing starts at
	// index l+1, the point right after every candidate is skipped and
	// rejected candidates are not folded back.
	//
	// In both modes the bounds are r1±diff for the initial regime and are
	// reset only when a shift is accepted.
	Reference
)

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	if m == Reference {
		return "reference"
	}
	return "standard"
}

// ParseMode parses "standard" or "reference". The empty string maps to Standard.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "standard":
		return Standard, nil
	case "reference":
		return Reference, nil
	}
	return Standard, fmt.Errorf("unknown scan mode %q", s)
}

// Config holds the detector parameters.
type Config struct {
	MinLength   int             // Minimum regime length l (>= 2)
	Probability float64         // Significance probability p in (0, 1)
	Variance    stats.Estimator // Window variance estimator (default: Population)
	Mode        Mode            // Scan convention (default: Standard)
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() *Config {
	return &Config{
		MinLength:   10,
		Probability: 0.05,
		Variance:    stats.Population,
		Mode:        Standard,
	}
}

// Detector runs the regime shift test. A Detector holds no state between
// calls and is safe for concurrent use.
type Detector struct {
	config Config
	log    zerolog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the logger used for per-candidate debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Detector) {
		d.log = l
	}
}

// New creates a detector. A nil config uses DefaultConfig.
func New(config *Config, opts ...Option) *Detector {
	if config == nil {
		config = DefaultConfig()
	}
	d := &Detector{
		config: *config,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns a copy of the detector's configuration.
func (d *Detector) Config() Config {
	return d.config
}

// Detect returns the accepted shift indices and the RSI trace of data using
// minimum regime length l and significance probability p.
func Detect(data []float64, l int, p float64) ([]int, []float64, error) {
	cfg := DefaultConfig()
	cfg.MinLength = l
	cfg.Probability = p

	res, err := New(cfg).Detect(data)
	if err != nil {
		return nil, nil, err
	}
	return res.Shifts, res.RSI, nil
}

// Detect scans data once and returns the confirmed shifts. data is not
// modified. No partial result is returned on error.
func (d *Detector) Detect(data []float64) (*Result, error) {
	if err := d.validate(data); err != nil {
		return nil, err
	}

	th, err := d.threshold(data)
	if err != nil {
		return nil, err
	}

	n := len(data)
	l := d.config.MinLength
	fl := float64(l)
	scale := th.AvgVar * fl

	rsi := make([]float64, n)
	shifts := []int{}
	candidates := []int{}

	// Step 1: Initial regime
	r1 := mean(data[:l])
	lower, upper := r1-th.Diff, r1+th.Diff

	// Bounds move only when a shift is accepted.
	absorb := func(x float64) {
		r1 = ((fl-1)*r1 + x) / fl
	}

	start := l
	if d.config.Mode == Reference {
		start = l + 1
	}

	// Step 2: Sequential scan
	for i := start; i < n; i++ {
		x := data[i]
		if x >= lower && x <= upper {
			absorb(x)
			continue
		}

		// Candidate shift at j; the exceeded bound stands in for the new mean
		j := i
		upward := x > upper
		target := upper
		if !upward {
			target = lower
		}
		candidates = append(candidates, j)

		// Step 3: Accumulate RSI over the following window
		end := min(j+l, n)
		for k := j + 1; k < end; k++ {
			if upward {
				rsi[j] += (data[k] - target) / scale
			} else {
				rsi[j] += (target - data[k]) / scale
			}
			if rsi[j] < 0 {
				rsi[j] = 0
				break
			}
		}

		// Step 4: Accept or reject
		accepted := rsi[j] > 0
		if accepted {
			shifts = append(shifts, j)
			r1 = mean(data[j:end])
			lower, upper = r1-th.Diff, r1+th.Diff
		} else {
			rsi[j] = 0
			if d.config.Mode == Standard {
				absorb(x)
			}
		}

		d.log.Debug().
			Int("index", j).
			Bool("upward", upward).
			Float64("rsi", rsi[j]).
			Bool("accepted", accepted).
			Msg("candidate tested")

		if d.config.Mode == Reference {
			i++
		}
	}

	return &Result{
		Shifts:     shifts,
		RSI:        rsi,
		Candidates: candidates,
		Threshold:  th,
		Regimes:    segment(data, shifts),
	}, nil
}

func (d *Detector) validate(data []float64) error {
	n := len(data)
	l := d.config.MinLength
	p := d.config.Probability

	if !(p > 0 && p < 1) {
		return errorf(KindInvalidParameter, "probability p=%v must lie in (0, 1)", p)
	}
	if l <= 1 {
		return errorf(KindInvalidParameter, "minimum regime length l=%d must be at least 2", l)
	}
	if l >= n {
		return errorf(KindInvalidParameter, "minimum regime length l=%d must be below series length %d", l, n)
	}
	if n < 2*l+1 {
		return errorf(KindInsufficientData, "series length %d is below 2l+1=%d", n, 2*l+1)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errorf(KindInvalidParameter, "value at index %d is %v", i, v)
		}
	}
	return nil
}

// threshold computes the minimum significant difference between two regime
// means of length l.
func (d *Detector) threshold(data []float64) (Threshold, error) {
	l := d.config.MinLength

	tStat, err := stats.TCritical(d.config.Probability, float64(2*l-2))
	if err != nil {
		return Threshold{}, errorf(KindInvalidParameter, "%v", err)
	}

	if flat(data) {
		return Threshold{}, errorf(KindDegenerateInput, "all %d values equal %v", len(data), data[0])
	}

	avgVar, err := stats.AverageWindowVariance(data, l, d.config.Variance)
	if err != nil {
		return Threshold{}, errorf(KindInsufficientData, "%v", err)
	}
	if avgVar == 0 {
		return Threshold{}, errorf(KindDegenerateInput, "average window variance is zero for l=%d", l)
	}

	return Threshold{
		TStat:  tStat,
		AvgVar: avgVar,
		Diff:   tStat * math.Sqrt(2*avgVar/float64(l)),
	}, nil
}

func flat(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

// mean is only called on non-empty slices.
func mean(data []float64) float64 {
	m, _ := stats.Mean(data)
	return m
}
