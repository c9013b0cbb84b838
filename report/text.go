package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// WriteDetectionCSV writes one row per observation:
// index,ds,value,rsi,shift,regime_mean.
func WriteDetectionCSV(w io.Writer, d Detection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "ds", "value", "rsi", "shift", "regime_mean"}); err != nil {
		return err
	}

	shift := make(map[int]bool, len(d.Shifts))
	for _, s := range d.Shifts {
		shift[s] = true
	}

	seg := 0
	for i, v := range d.Values {
		for seg < len(d.Regimes)-1 && i >= d.Regimes[seg].End {
			seg++
		}
		ds := ""
		if d.Dates != nil {
			ds = d.Dates[i]
		}
		mean := ""
		if len(d.Regimes) > 0 {
			mean = formatFloat(d.Regimes[seg].Mean)
		}
		row := []string{
			strconv.Itoa(i),
			ds,
			formatFloat(v),
			formatFloat(d.RSI[i]),
			strconv.FormatBool(shift[i]),
			mean,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDetectionText writes a human-readable summary of a detection.
func WriteDetectionText(w io.Writer, d Detection) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Regime shifts for l=%d and p=%g (%s scan, %s variance)\n",
		d.MinLength, d.Probability, d.Mode, d.Variance)
	fmt.Fprintf(&b, "Observations: %d  t=%.4f  avg_var=%.4f  diff=%.4f  lag-1 r=%.3f\n",
		d.NObs, d.TStat, d.AvgVar, d.Diff, d.Lag1)

	if len(d.Shifts) == 0 {
		fmt.Fprintf(&b, "No significant shift found (%d candidates rejected); consider a larger p.\n", len(d.Candidates))
		_, err := io.WriteString(w, b.String())
		return err
	}
	fmt.Fprintf(&b, "Shifts: %d of %d candidates accepted\n\n", len(d.Shifts), len(d.Candidates))
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGIME\tSTART\tEND\tDATE\tMEAN\tRSI")
	for i, r := range d.Regimes {
		rsi := ""
		if i > 0 {
			rsi = fmt.Sprintf("%.4f", d.RSI[r.Start])
		}
		fmt.Fprintf(tw, "R%d\t%d\t%d\t%s\t%.4f\t%s\n", i+1, r.Start, r.End, r.StartDate, r.Mean, rsi)
	}
	return tw.Flush()
}

// WriteSweepText writes the found frequency of every index hit at least once.
func WriteSweepText(w io.Writer, s Sweep) error {
	fmt.Fprintf(w, "Sweep l=%d..%d p=%g: %d of %d lengths completed\n",
		s.MinLength, s.MaxLength, s.Probability, s.Completed, len(s.Trials))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tDATE\tFOUND")
	for i, c := range s.Frequency {
		if c == 0 {
			continue
		}
		date := ""
		if s.Dates != nil {
			date = s.Dates[i]
		}
		fmt.Fprintf(tw, "%d\t%s\t%d/%d\n", i, date, c, s.Completed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Consensus (>= half of runs): %v\n", s.Consensus)
	return err
}

// WriteSweepCSV writes one row per observation: index,ds,value,found.
func WriteSweepCSV(w io.Writer, s Sweep) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "ds", "value", "found"}); err != nil {
		return err
	}
	for i, v := range s.Values {
		ds := ""
		if s.Dates != nil {
			ds = s.Dates[i]
		}
		if err := cw.Write([]string{strconv.Itoa(i), ds, formatFloat(v), strconv.Itoa(s.Frequency[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
