package timeseries

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX loads a time series from a sheet of an Excel workbook.
func LoadXLSX(filename string, opts *Options) (*Series, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return loadWorkbook(f, opts)
}

// LoadXLSXFromReader loads a time series from a workbook read from r.
func LoadXLSXFromReader(r io.Reader, opts *Options) (*Series, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return loadWorkbook(f, opts)
}

func loadWorkbook(f *excelize.File, opts *Options) (*Series, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoData
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRows(rows, opts)
}
