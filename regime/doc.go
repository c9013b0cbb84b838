// Package regime implements Rodionov's sequential test for regime shifts
// (STARS) in the mean of a univariate series.
//
// The detector estimates the minimum significant difference between two
// regime means of length l from a Student's t critical value and the average
// variance of all length-l windows, then scans the series once. A point
// outside the current regime's bounds becomes a candidate; the Regime Shift
// Index (RSI) accumulated over the next l-1 points confirms or rejects it.
//
// # Basic Usage
//
//	shifts, rsi, err := regime.Detect(values, 10, 0.05)
//	if errors.Is(err, regime.ErrInsufficientData) {
//	    // lower l and retry
//	}
//
// An empty shift list is a valid result: nothing was significant at p.
// Relaxing p (towards 0.5) makes the test less strict.
//
// # Full Results
//
//	cfg := regime.DefaultConfig()
//	cfg.MinLength = 15
//	cfg.Probability = 0.01
//	res, err := regime.New(cfg).Detect(values)
//	for _, r := range res.Regimes {
//	    fmt.Printf("[%d, %d) mean=%.3f\n", r.Start, r.End, r.Mean)
//	}
//
// # Scan Conventions
//
// Standard mode tests every point from index l on and folds rejected
// candidates back into the running mean. Reference mode reproduces the
// published STARS script, which starts at l+1 and skips the point after
// each candidate, and is meant for validating against its output. In both
// modes the significance bounds stay fixed between accepted shifts.
//
// # References
//
//   - Rodionov, S. N. (2004). A sequential algorithm for testing climate regime
//     shifts. Geophysical Research Letters, 31(9).
package regime
