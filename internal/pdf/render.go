package pdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

type Renderer interface {
	Render(path string, dpi float64) ([]image.Image, error)
}

// FitzRenderer rasterizes pages with MuPDF.
type FitzRenderer struct{}

func (FitzRenderer) Render(path string, dpi float64) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	// Page numbers are zero indexed in the fitz package.
	images := make([]image.Image, 0, doc.NumPage())
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		img, err := doc.ImageDPI(pageNum, dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
