package pdf

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
)

// whiteThreshold is the minimum 16-bit channel value counted as paper.
const whiteThreshold = 0xF000

type RegionImage struct {
	Path   string
	Region layout.Region
	Bounds image.Rectangle
	Empty  bool
}

// Splitter cuts a rendered composed page into the regions it was built
// from and saves each as a PNG.
type Splitter struct {
	outputDir string
	logger    *logger.Logger
}

func NewSplitter(outputDir string, logger *logger.Logger) (*Splitter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Splitter{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

func (s *Splitter) SplitPage(img image.Image, page layout.Page, baseName string) ([]RegionImage, error) {
	bounds := img.Bounds()
	scaleX := float64(bounds.Dx()) / page.Width()
	scaleY := float64(bounds.Dy()) / page.Height()

	var out []RegionImage
	for i, region := range page.Regions() {
		rect := pixelRect(region, scaleX, scaleY).Add(bounds.Min).Intersect(bounds)
		if rect.Empty() {
			s.logger.Debug("Region %d of %s lies outside the rendered page", i, baseName)
			continue
		}

		name := "content"
		if region.Blank {
			name = "notes"
		}
		path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", baseName, name))

		crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				crop.Set(x-rect.Min.X, y-rect.Min.Y, img.At(x, y))
			}
		}

		if err := s.saveImage(crop, path); err != nil {
			return nil, fmt.Errorf("failed to save %s region: %w", name, err)
		}
		s.logger.Debug("Created %s image: %s", name, path)

		out = append(out, RegionImage{
			Path:   path,
			Region: region,
			Bounds: rect,
			// Anti-aliasing may bleed one pixel across the seam.
			Empty: IsEmpty(img, rect.Inset(1)),
		})
	}

	return out, nil
}

// IsEmpty reports whether every pixel of rect is (near) white.
func IsEmpty(img image.Image, rect image.Rectangle) bool {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < whiteThreshold || g < whiteThreshold || b < whiteThreshold {
				return false
			}
		}
	}
	return true
}

func pixelRect(region layout.Region, scaleX, scaleY float64) image.Rectangle {
	x, y, w, h := region.Rect()
	return image.Rect(
		int(math.Round(x*scaleX)),
		int(math.Round(y*scaleY)),
		int(math.Round((x+w)*scaleX)),
		int(math.Round((y+h)*scaleY)),
	)
}

func (s *Splitter) saveImage(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
