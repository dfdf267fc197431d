// SPDX-License-Identifier: MIT
// Package: fuzzar/dataset
//
// csv.go — CSV ingestion: header row of column names, numeric cells below.
// A leading UTF-8 BOM is tolerated (spreadsheet exports write one).

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const utf8BOM = "\xEF\xBB\xBF"

// ReadCSV parses a CSV stream into a Dataset. The first record is the header.
// Cells are trimmed before parsing; an unparsable cell yields ErrParse with the
// row (1-based, header excluded) and column name.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("ReadCSV: missing header: %w", ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: header: %w: %v", ErrParse, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]float64
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("ReadCSV: row %d: %w", line, ErrRaggedData)
			}
			return nil, fmt.Errorf("ReadCSV: row %d: %w: %v", line, ErrParse, err)
		}
		row := make([]float64, len(record))
		for c, cell := range record {
			v, perr := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if perr != nil {
				return nil, fmt.Errorf("ReadCSV: row %d column %q value %q: %w", line, header[c], cell, ErrParse)
			}
			row[c] = v
		}
		rows = append(rows, row)
	}

	return New(header, rows)
}

// LoadCSV opens path and parses it with ReadCSV.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCSV: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("LoadCSV %s: %w", path, err)
	}
	return ds, nil
}
