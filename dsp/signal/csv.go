package signal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TimeHeader is the label of the first CSV column.
const TimeHeader = "Time (ms)"

// DefaultLabel is the value column label of synthesized test signals.
const DefaultLabel = "Sinusoid"

// ErrFormat is returned for CSV input that is not a numeric table.
var ErrFormat = errors.New("signal: malformed CSV")

// WriteCSV writes ts as "Time (ms),<label>" followed by one row per sample.
func WriteCSV(w io.Writer, ts *TestSignal, label string) error {
	return WriteSeries(w, ts.TimesMS, ts.Samples, label)
}

// WriteSeries writes a two-column time/value table.
func WriteSeries(w io.Writer, timesMS, values []float64, label string) error {
	if len(timesMS) != len(values) {
		return fmt.Errorf("csv column length mismatch: %d != %d", len(timesMS), len(values))
	}
	if label == "" {
		label = DefaultLabel
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{TimeHeader, label}); err != nil {
		return err
	}

	row := make([]string, 2)
	for i, v := range values {
		row[0] = strconv.FormatFloat(timesMS[i], 'g', -1, 64)
		row[1] = strconv.FormatFloat(v, 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Table is a parsed numeric CSV log: a header row and one column per
// header field. Column 0 is the time axis.
type Table struct {
	Header  []string
	Columns [][]float64
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0])
}

// ReadTable parses a CSV log. Lines starting with '#' are skipped, the first
// remaining line is the header and every other row must have the same
// number of numeric fields.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 columns, got %d", ErrFormat, len(header))
	}

	t := &Table{
		Header:  header,
		Columns: make([][]float64, len(header)),
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}

		line, _ := cr.FieldPos(0)
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrFormat, line, i+1, field)
			}
			t.Columns[i] = append(t.Columns[i], v)
		}
	}

	return t, nil
}

// ReadSeries parses a two-column time/value CSV.
func ReadSeries(r io.Reader) (timesMS, values []float64, err error) {
	t, err := ReadTable(r)
	if err != nil {
		return nil, nil, err
	}
	if len(t.Header) != 2 {
		return nil, nil, fmt.Errorf("%w: want 2 columns, got %d", ErrFormat, len(t.Header))
	}

	return t.Columns[0], t.Columns[1], nil
}
