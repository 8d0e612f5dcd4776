package design

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks an invalid or incomplete filter specification:
// unknown tags, a mode/edge mismatch, or a missing family parameter.
var ErrConfiguration = errors.New("design: configuration error")

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

func configError(err error) error {
	if errors.Is(err, ErrConfiguration) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}
