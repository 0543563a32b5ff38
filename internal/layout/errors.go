package layout

import (
	"errors"
	"fmt"
)

var ErrInvalidDimension = errors.New("invalid page dimension")

// DimensionError reports the rejected width and height of a page.
type DimensionError struct {
	Width  float64
	Height float64
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: %g x %g (both must be positive)", ErrInvalidDimension, e.Width, e.Height)
}

func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimension
}
