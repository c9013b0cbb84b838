// Package goregime detects regime shifts in the mean of a time series.
//
// GoRegime implements Rodionov's sequential t-test analysis of regime shifts
// (STARS). A regime is a run of at least l observations whose mean differs
// significantly, at probability p, from the run before it. The series is
// scanned once; the Regime Shift Index (RSI) confirms or rejects each
// candidate over the following l-1 points.
//
// # Features
//
//   - Single-pass shift detection with per-point RSI (regime)
//   - Sensitivity sweeps over the minimum regime length (sweep)
//   - Windowed variance, Student's t thresholds and seasonal standardization (stats)
//   - CSV and Excel loading, log transforms and annual aggregation (timeseries)
//   - JSON, CSV and text reports for plotting (report)
//   - The goregime command line tool (cmd/goregime)
//
// # Quick Start
//
// Detect shifts with l=10 and p=0.05:
//
//	shifts, rsi, err := regime.Detect(values, 10, 0.05)
//
// Standardize monthly flows first, then inspect every regime:
//
//	z, _ := stats.SeasonalStandardize(series, 12, true)
//	res, _ := regime.New(regime.DefaultConfig()).Detect(z.Standardized.Values)
//	for _, r := range res.Regimes {
//	    fmt.Println(r.Start, r.End, r.Mean)
//	}
//
// Count how often each index is found across lengths 5 to 35:
//
//	res, err := sweep.Run(ctx, values, sweep.DefaultConfig())
//	consensus := res.Consensus(res.Completed / 2)
//
// # References
//
//   - Rodionov, S. N. (2004). A sequential algorithm for testing climate regime
//     shifts. Geophysical Research Letters, 31(9).
package goregime
