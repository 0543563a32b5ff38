package layout

import (
	"fmt"
	"math"
)

type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// Box is the extent of a page in PDF points.
type Box struct {
	Width  float64
	Height float64
}

// Orientation reports Portrait only when the page is strictly taller than
// it is wide. Square pages are Landscape.
func (b Box) Orientation() Orientation {
	if b.Height > b.Width {
		return Portrait
	}
	return Landscape
}

func (b Box) String() string {
	return fmt.Sprintf("%.2f x %.2f", b.Width, b.Height)
}

func (b Box) validate() error {
	if !positive(b.Width) || !positive(b.Height) {
		return &DimensionError{Width: b.Width, Height: b.Height}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
