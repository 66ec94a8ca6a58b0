package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for loading series values from CSV.
type CSVOptions struct {
	TimeColumn  string // column name for sample times in seconds (optional)
	ValueColumn string // column name for values (default: "value")
	HasHeader   bool   // whether the file has a header row (default: true)
	Delimiter   rune   // field delimiter (default: ',')
	SkipRows    int    // number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "value",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a series from a CSV file. When a time column is present, its
// first entries set TMin and TInterval on the resulting series, overriding
// the passed options; the remaining configuration comes from series.
func LoadCSV(filename string, opts *CSVOptions, series Options) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	s, err := LoadCSVFromReader(file, opts, series)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return s, nil
}

// LoadCSVFromReader loads a series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions, series Options) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("skip row: %w", err)
		}
	}

	valueIdx, timeIdx := -1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case h == opts.ValueColumn || (opts.ValueColumn == "" && (h == "value" || h == "y")):
				valueIdx = i
			case opts.TimeColumn != "" && h == opts.TimeColumn:
				timeIdx = i
			case h == "t" || h == "time" || h == "ds":
				if timeIdx == -1 {
					timeIdx = i
				}
			}
		}
		if valueIdx == -1 {
			// Fall back to the last column.
			valueIdx = len(header) - 1
		}
	}

	var values, times []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		// Without a header the layout is t,value, or a single value column.
		if valueIdx == -1 {
			if len(record) >= 2 {
				timeIdx, valueIdx = 0, 1
			} else {
				valueIdx = 0
			}
		}

		if valueIdx >= len(record) {
			continue
		}
		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		if valStr == "" || valStr == "NA" || valStr == "NaN" || valStr == "null" {
			continue
		}
		// ParseFloat accepts "nan" and "inf" spellings.
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			continue // skip malformed and non-finite rows
		}
		values = append(values, val)

		if timeIdx >= 0 && timeIdx < len(record) {
			tStr := strings.TrimSpace(strings.Trim(record[timeIdx], "\""))
			if tv, err := strconv.ParseFloat(tStr, 64); err == nil && !math.IsNaN(tv) && !math.IsInf(tv, 0) {
				times = append(times, tv)
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no valid data found in csv")
	}

	if len(times) == len(values) {
		series.TMin = times[0]
		if len(times) >= 2 {
			if d := times[1] - times[0]; d > 0 {
				series.TInterval = d
			}
		}
	}

	return New(values, series), nil
}

// SaveCSV writes the series as t,value rows, with the time axis derived from
// TMin and TInterval.
func SaveCSV(s *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	w.WriteString("t,value\n")
	for i, v := range s.Values {
		w.WriteString(strconv.FormatFloat(s.TMin+float64(i)*s.TInterval, 'f', -1, 64))
		w.WriteString(",")
		w.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		w.WriteString("\n")
	}
	return w.Flush()
}
