package window

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned for unrecognised window tags.
var ErrUnknownType = errors.New("window: unknown type")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}
