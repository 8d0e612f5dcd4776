package prototype

import (
	"errors"
	"fmt"
)

var (
	// ErrOrder is returned for orders outside a family's supported range.
	ErrOrder = errors.New("prototype: unsupported order")
	// ErrShape is returned for non-positive ripple or attenuation values.
	ErrShape = errors.New("prototype: invalid shape parameter")
	// ErrNormalization is returned for an unknown Bessel normalization.
	ErrNormalization = errors.New("prototype: unknown bessel normalization")
)

func validateOrder(order, maxOrder int) error {
	if order < 1 || (maxOrder > 0 && order > maxOrder) {
		return fmt.Errorf("%w: %d", ErrOrder, order)
	}
	return nil
}

func validateDB(name string, db float64) error {
	if !(db > 0) {
		return fmt.Errorf("%w: %s must be > 0 dB, got %g", ErrShape, name, db)
	}
	return nil
}
