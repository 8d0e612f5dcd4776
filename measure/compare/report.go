package compare

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	parquet "github.com/parquet-go/parquet-go"
)

// ReportRow is one frequency bin of the comparison report.
type ReportRow struct {
	FrequencyHz float64  `parquet:"frequency_hz"`
	OriginalDB  float64  `parquet:"original_db"`
	LocalDB     float64  `parquet:"local_db"`
	NativeDB    *float64 `parquet:"native_db,optional"`
}

// Rows flattens the comparison into report rows.
func (c *Comparison) Rows() []ReportRow {
	n := min(len(c.Original.MagnitudeDB), len(c.Local.MagnitudeDB))
	if c.Native != nil {
		n = min(n, len(c.Native.MagnitudeDB))
	}

	rows := make([]ReportRow, n)
	for k := range rows {
		rows[k] = ReportRow{
			FrequencyHz: c.Original.FrequenciesHz[k],
			OriginalDB:  c.Original.MagnitudeDB[k],
			LocalDB:     c.Local.MagnitudeDB[k],
		}
		if c.Native != nil {
			v := c.Native.MagnitudeDB[k]
			rows[k].NativeDB = &v
		}
	}
	return rows
}

// WriteReport writes the comparison spectra as a zstd-compressed Parquet
// table.
func WriteReport(w io.Writer, c *Comparison) error {
	pw := parquet.NewGenericWriter[ReportRow](w, parquet.Compression(&parquet.Zstd))
	if _, err := pw.Write(c.Rows()); err != nil {
		return fmt.Errorf("compare: write report: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("compare: close report: %w", err)
	}
	return nil
}

// ReadReport reads a table written by WriteReport.
func ReadReport(data []byte) ([]ReportRow, error) {
	gr := parquet.NewGenericReader[ReportRow](bytes.NewReader(data))
	defer gr.Close()

	out := make([]ReportRow, 0, gr.NumRows())
	for {
		batch := make([]ReportRow, 1024)
		n, err := gr.Read(batch)
		out = append(out, batch[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("compare: read report: %w", err)
		}
	}
	return out, nil
}
