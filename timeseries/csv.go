package timeseries

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Options holds options for loading a series from tabular data.
type Options struct {
	DateColumn  string // Column name for dates (optional, auto-detected)
	ValueColumn string // Column name for values (default: "y")
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	DateFormat  string // Preferred date format (default: "2006-01-02")
	HasHeader   bool   // Whether the first row is a header (default: true)
	Delimiter   rune   // CSV field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip before the header
	Sheet       string // XLSX sheet name (default: first sheet)
}

// DefaultOptions returns default options for loading.
func DefaultOptions() *Options {
	return &Options{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// Fallback date layouts tried after Options.DateFormat.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01",
	"2006",
}

var missing = map[string]bool{"": true, "NA": true, "NaN": true, "nan": true, "null": true}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *Options) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadCSVFromReader loads a time series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *Options) (*Series, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows, opts)
}

// columns holds resolved column positions; -1 means absent.
type columns struct {
	value, date, id int
}

func resolveColumns(header []string, opts *Options) (columns, error) {
	cols := columns{value: -1, date: -1, id: -1}
	for i, h := range header {
		h = clean(h)
		switch {
		case h == opts.ValueColumn:
			cols.value = i
		case opts.DateColumn != "" && h == opts.DateColumn:
			cols.date = i
		case opts.DateColumn == "" && cols.date == -1 &&
			(h == "ds" || h == "date" || h == "Date" || h == "datetime" || h == "Year" || h == "year"):
			cols.date = i
		case opts.IDColumn != "" && h == opts.IDColumn:
			cols.id = i
		}
	}

	if cols.value == -1 {
		if opts.ValueColumn != "" && opts.ValueColumn != "y" {
			return cols, fmt.Errorf("value column %q not found", opts.ValueColumn)
		}
		// Default to the last column
		cols.value = len(header) - 1
	}
	if opts.IDFilter != "" && cols.id == -1 {
		return cols, fmt.Errorf("id column %q not found", opts.IDColumn)
	}
	return cols, nil
}

// fromRows builds a series from string rows shared by the CSV and XLSX loaders.
func fromRows(rows [][]string, opts *Options) (*Series, error) {
	if opts.SkipRows >= len(rows) {
		return nil, ErrNoData
	}
	rows = rows[opts.SkipRows:]

	var cols columns
	if opts.HasHeader {
		var err error
		if cols, err = resolveColumns(rows[0], opts); err != nil {
			return nil, err
		}
		rows = rows[1:]
	} else {
		// No header: date, value
		cols = columns{value: 1, date: 0, id: -1}
	}

	var values []float64
	var timestamps []time.Time
	datesOK := cols.date >= 0

	for line, record := range rows {
		if opts.IDFilter != "" && (cols.id >= len(record) || clean(record[cols.id]) != opts.IDFilter) {
			continue
		}
		if cols.value >= len(record) {
			continue
		}

		raw := clean(record[cols.value])
		if missing[raw] {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse value %q: %w", line+1, raw, err)
		}
		values = append(values, v)

		if datesOK {
			ts, ok := time.Time{}, false
			if cols.date < len(record) {
				ts, ok = parseDate(clean(record[cols.date]), opts.DateFormat)
			}
			if ok {
				timestamps = append(timestamps, ts)
			} else {
				datesOK = false
			}
		}
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}

	s := &Series{Values: values, Name: opts.ValueColumn}
	if datesOK && len(timestamps) == len(values) {
		s.Timestamps = timestamps
	}
	return s, nil
}

func parseDate(s, preferred string) (time.Time, bool) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

// WriteCSV writes a series as "ds,y" rows, or "index,y" when the series has
// no timestamps.
func WriteCSV(w io.Writer, series *Series) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	header := []string{"index", "y"}
	if series.HasTimestamps() {
		header[0] = "ds"
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, v := range series.Values {
		key := strconv.Itoa(i)
		if series.HasTimestamps() {
			key = series.Timestamps[i].Format("2006-01-02")
		}
		if err := cw.Write([]string{key, strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveCSV saves a time series to a CSV file.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, series); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
