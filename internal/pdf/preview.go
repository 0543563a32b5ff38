package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/notesmargin/internal/assembler"
	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
	"github.com/kpauljoseph/notesmargin/pkg/utils"
)

type PagePreview struct {
	Number   int
	Original layout.Box
	Composed layout.Box
	Hash     string
	Regions  []RegionImage
}

// NotesAreaEmpty reports whether every blank region rendered without ink.
func (p PagePreview) NotesAreaEmpty() bool {
	for _, r := range p.Regions {
		if r.Region.Blank && !r.Empty {
			return false
		}
	}
	return true
}

// Previewer composes a PDF, renders the result and cuts each page back into
// its content and notes regions so the layout can be checked by eye or by
// pixel.
type Previewer struct {
	renderer  Renderer
	writer    *Writer
	assembler *assembler.Assembler
	dpi       float64
	logger    *logger.Logger
}

func NewPreviewer(renderer Renderer, writer *Writer, dpi float64, logger *logger.Logger) *Previewer {
	return &Previewer{
		renderer:  renderer,
		writer:    writer,
		assembler: assembler.New(logger),
		dpi:       dpi,
		logger:    logger,
	}
}

func (p *Previewer) Preview(ctx context.Context, pdfPath, outputDir string) ([]PagePreview, error) {
	workDir, err := os.MkdirTemp("", "notesmargin-preview-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	doc, err := LoadDocument(pdfPath, workDir)
	if err != nil {
		return nil, err
	}

	composed, err := p.assembler.Transform(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to transform %s: %w", filepath.Base(pdfPath), err)
	}

	splitter, err := NewSplitter(outputDir, p.logger)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	composedPath := filepath.Join(outputDir, base+"_composed.pdf")
	if err := p.writer.Write(composed, composedPath); err != nil {
		return nil, err
	}

	images, err := p.renderer.Render(composedPath, p.dpi)
	if err != nil {
		return nil, err
	}
	if len(images) != composed.Len() {
		return nil, fmt.Errorf("rendered %d pages, expected %d", len(images), composed.Len())
	}

	previews := make([]PagePreview, 0, len(images))
	for i, img := range images {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := composed.Page(i)
		regions, err := splitter.SplitPage(img, page, fmt.Sprintf("%s_page%d", base, i+1))
		if err != nil {
			return nil, fmt.Errorf("failed to split page %d: %w", i+1, err)
		}

		preview := PagePreview{
			Number:   i + 1,
			Original: doc.Page(i).Box(),
			Composed: page.Box(),
			Hash:     utils.GenerateImageHash(img),
			Regions:  regions,
		}
		if !preview.NotesAreaEmpty() {
			p.logger.Warn("Page %d: notes area is not empty", i+1)
		}
		previews = append(previews, preview)
	}

	return previews, nil
}

// RemoveComposed deletes the composed PDF a preview left in outputDir.
func RemoveComposed(pdfPath, outputDir string) error {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	err := os.Remove(filepath.Join(outputDir, base+"_composed.pdf"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
