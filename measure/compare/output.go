package compare

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-filterdesign/dsp/signal"
)

// ReadOutput reads the engine's two-column output CSV. The data row count
// must equal wantRows; the trailing boundary row is dropped, so
// wantRows-1 samples are returned.
func ReadOutput(path string, wantRows int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExternalTool, err)
	}
	defer f.Close()

	_, values, err := signal.ReadSeries(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExternalTool, path, err)
	}
	if len(values) != wantRows {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrExternalTool, path, len(values), wantRows)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrExternalTool, path)
	}

	return values[:len(values)-1], nil
}
