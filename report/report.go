// Package report marshals detection and sweep results for plotting and
// inspection.
package report

import (
	"encoding/json"
	"io"

	"github.com/sartorproj/goregime/regime"
	"github.com/sartorproj/goregime/stats"
	"github.com/sartorproj/goregime/sweep"
	"github.com/sartorproj/goregime/timeseries"
)

const dateLayout = "2006-01-02"

// Segment is one regime between accepted shifts.
type Segment struct {
	Start     int     `json:"start"`
	End       int     `json:"end"`
	StartDate string  `json:"start_date,omitempty"`
	Mean      float64 `json:"mean"`
}

// Detection holds a single detection run.
type Detection struct {
	Name        string    `json:"name,omitempty"`
	NObs        int       `json:"n_obs"`
	MinLength   int       `json:"l"`
	Probability float64   `json:"p"`
	Mode        string    `json:"mode"`
	Variance    string    `json:"variance"`
	TStat       float64   `json:"t_stat"`
	AvgVar      float64   `json:"avg_var"`
	Diff        float64   `json:"diff"`
	Lag1        float64   `json:"lag1_autocorrelation"`
	Dates       []string  `json:"dates,omitempty"`
	Values      []float64 `json:"values"`
	RSI         []float64 `json:"rsi"`
	Shifts      []int     `json:"shifts"`
	ShiftDates  []string  `json:"shift_dates,omitempty"`
	Candidates  []int     `json:"candidates"`
	Regimes     []Segment `json:"regimes"`
}

// Trial summarizes one length of a sweep.
type Trial struct {
	MinLength int    `json:"l"`
	Shifts    []int  `json:"shifts,omitempty"`
	Skipped   string `json:"skipped,omitempty"`
}

// Sweep holds a sensitivity sweep over minimum regime lengths.
type Sweep struct {
	Name        string    `json:"name,omitempty"`
	NObs        int       `json:"n_obs"`
	MinLength   int       `json:"l_min"`
	MaxLength   int       `json:"l_max"`
	Probability float64   `json:"p"`
	Mode        string    `json:"mode"`
	Variance    string    `json:"variance"`
	Completed   int       `json:"completed"`
	Dates       []string  `json:"dates,omitempty"`
	Values      []float64 `json:"values"`
	Frequency   []int     `json:"found_frequency"`
	Consensus   []int     `json:"consensus"`
	Trials      []Trial   `json:"trials"`
}

// FromDetection builds a Detection from a series and its result.
func FromDetection(series *timeseries.Series, config regime.Config, res *regime.Result) Detection {
	dates := formatDates(series)

	d := Detection{
		Name:        series.Name,
		NObs:        series.Len(),
		MinLength:   config.MinLength,
		Probability: config.Probability,
		Mode:        config.Mode.String(),
		Variance:    config.Variance.String(),
		TStat:       res.Threshold.TStat,
		AvgVar:      res.Threshold.AvgVar,
		Diff:        res.Threshold.Diff,
		Dates:       dates,
		Values:      series.Values,
		RSI:         res.RSI,
		Shifts:      res.Shifts,
		Candidates:  res.Candidates,
		Regimes:     make([]Segment, len(res.Regimes)),
	}

	if r, err := stats.Lag1(series.Values); err == nil {
		d.Lag1 = r
	}
	for i, r := range res.Regimes {
		d.Regimes[i] = Segment{Start: r.Start, End: r.End, Mean: r.Mean}
		if dates != nil {
			d.Regimes[i].StartDate = dates[r.Start]
		}
	}
	if dates != nil {
		d.ShiftDates = make([]string, len(res.Shifts))
		for i, s := range res.Shifts {
			d.ShiftDates[i] = dates[s]
		}
	}
	return d
}

// FromSweep builds a Sweep summary. Indices found by at least half of the
// completed trials are reported as consensus.
func FromSweep(series *timeseries.Series, config sweep.Config, res *sweep.Result) Sweep {
	s := Sweep{
		Name:        series.Name,
		NObs:        series.Len(),
		MinLength:   config.MinLength,
		MaxLength:   config.MaxLength,
		Probability: config.Probability,
		Mode:        config.Mode.String(),
		Variance:    config.Variance.String(),
		Completed:   res.Completed,
		Dates:       formatDates(series),
		Values:      series.Values,
		Frequency:   res.Frequency,
		Consensus:   res.Consensus((res.Completed + 1) / 2),
		Trials:      make([]Trial, len(res.Trials)),
	}

	for i, t := range res.Trials {
		s.Trials[i] = Trial{MinLength: t.Length}
		if t.Skipped() {
			s.Trials[i].Skipped = t.Err.Error()
		} else {
			s.Trials[i].Shifts = t.Result.Shifts
		}
	}
	return s
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDates(series *timeseries.Series) []string {
	if !series.HasTimestamps() {
		return nil
	}
	dates := make([]string, series.Len())
	for i, ts := range series.Timestamps {
		dates[i] = ts.Format(dateLayout)
	}
	return dates
}
