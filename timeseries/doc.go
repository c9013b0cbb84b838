// Package timeseries provides time series data structures and loaders.
//
// A Series holds values and, optionally, one timestamp per value. Series
// built with New are index-only; series loaded from files carry timestamps
// whenever every row has a parseable date.
//
// # Creating a Series
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//	if err := series.Validate(); err != nil {
//	    // empty, or contains NaN/Inf
//	}
//
// # Loading Data
//
// CSV and Excel loaders share Options:
//
//	opts := timeseries.DefaultOptions()
//	opts.ValueColumn = "flow"
//	series, err := timeseries.LoadCSV("usgs_01434000_daily_cms.csv", opts)
//
//	opts = timeseries.DefaultOptions()
//	opts.Sheet = "annual"
//	opts.ValueColumn = "flow"
//	series, err = timeseries.LoadXLSX("gauges.xlsx", opts)
//
// Rows whose value is empty, NA, NaN or null are skipped. Any other
// unparseable value is an error.
//
// # Preparing Data
//
//	logged := series.Log()
//	annual, err := timeseries.AggregateAnnual(series) // calendar-year means
//	z := annual.Normalize()
//	err = timeseries.SaveCSV(z, "prepared.csv")
//
// Seasonal standardization lives in the stats package.
package timeseries
