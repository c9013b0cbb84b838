// Package stats provides the statistics behind regime shift detection.
//
// # Thresholds
//
// The minimum significant difference between two regime means of length l
// uses the two-tailed Student's t critical value with 2l-2 degrees of
// freedom and the average variance of every length-l window:
//
//	t, _ := stats.TCritical(0.05, float64(2*l-2))
//	avg, _ := stats.AverageWindowVariance(values, l, stats.Population)
//	diff := t * math.Sqrt(2*avg/float64(l))
//
// # Preparation
//
// Seasonal standardization removes each season's mean and spread, optionally
// after a log transform:
//
//	z, err := stats.SeasonalStandardize(monthly, 12, true)
//
// # Diagnostics
//
// Lag1 reports red noise, which inflates the number of accepted shifts:
//
//	r, err := stats.Lag1(values)
package stats
