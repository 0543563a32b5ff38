package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/notesmargin/internal/layout"
)

// ValidateFile runs pdfcpu's relaxed validation over a written PDF.
func ValidateFile(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("output failed validation: %w", err)
	}
	return nil
}

// PageDims returns the page boxes of a PDF as pdfcpu reports them.
func PageDims(path string) ([]layout.Box, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dimensions: %w", err)
	}

	boxes := make([]layout.Box, len(dims))
	for i, d := range dims {
		boxes[i] = layout.Box{Width: d.Width, Height: d.Height}
	}
	return boxes, nil
}
