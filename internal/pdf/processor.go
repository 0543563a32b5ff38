package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/notesmargin/internal/assembler"
	"github.com/kpauljoseph/notesmargin/internal/converter"
	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
	"github.com/kpauljoseph/notesmargin/pkg/models"
	"github.com/kpauljoseph/notesmargin/pkg/utils"
)

type Processor struct {
	tempDir          string
	outputDir        string
	prefix           string
	keepIntermediate bool
	converter        converter.DocumentConverter
	assembler        *assembler.Assembler
	writer           *Writer
	logger           *logger.Logger
}

func NewProcessor(
	tempDir string,
	outputDir string,
	prefix string,
	keepIntermediate bool,
	conv converter.DocumentConverter,
	writer *Writer,
	logger *logger.Logger,
) (*Processor, error) {
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Processor{
		tempDir:          tempDir,
		outputDir:        outputDir,
		prefix:           prefix,
		keepIntermediate: keepIntermediate,
		converter:        conv,
		assembler:        assembler.New(logger),
		writer:           writer,
		logger:           logger,
	}, nil
}

func (p *Processor) ShouldKeepIntermediate() bool {
	return p.keepIntermediate
}

// OutputPathFor is where the transformed PDF for input is written.
func (p *Processor) OutputPathFor(input string) string {
	return utils.OutputPath(p.outputDir, p.prefix, input)
}

// ProcessDocument converts a Word document to PDF and transforms it. The
// intermediate PDF is removed once the output is written unless the
// processor keeps intermediates, in which case it sits in the output
// directory.
func (p *Processor) ProcessDocument(ctx context.Context, path string) (models.ProcessingStats, error) {
	p.logger.Info("Processing document: %s", path)

	meta, err := converter.Inspect(path)
	if err != nil {
		return models.ProcessingStats{}, err
	}

	if p.converter == nil {
		return models.ProcessingStats{}, fmt.Errorf("no document converter configured")
	}

	workDir := p.outputDir
	if !p.keepIntermediate {
		workDir, err = os.MkdirTemp(p.tempDir, "convert-*")
		if err != nil {
			return models.ProcessingStats{}, fmt.Errorf("failed to create work directory: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(workDir); err != nil {
				p.logger.Warn("Failed to remove intermediate files in %s: %v", workDir, err)
			}
		}()
	}

	pdfPath, err := p.converter.Convert(ctx, path, workDir)
	if err != nil {
		return models.ProcessingStats{}, err
	}
	p.logger.Debug("Intermediate PDF: %s", pdfPath)

	stats, err := p.transform(ctx, pdfPath, p.OutputPathFor(path), &meta)
	if err != nil {
		return stats, err
	}
	stats.SourcePath = path
	return stats, nil
}

// ProcessPDF transforms an existing PDF without conversion.
func (p *Processor) ProcessPDF(ctx context.Context, pdfPath string) (models.ProcessingStats, error) {
	p.logger.Info("Processing PDF: %s", pdfPath)

	stats, err := p.transform(ctx, pdfPath, p.OutputPathFor(pdfPath), nil)
	if err != nil {
		return stats, err
	}
	stats.SourcePath = pdfPath
	return stats, nil
}

func (p *Processor) transform(ctx context.Context, pdfPath, outPath string, meta *layout.Metadata) (models.ProcessingStats, error) {
	stats := models.ProcessingStats{PDFPath: pdfPath}

	if same, _ := samePath(pdfPath, outPath); same {
		return stats, fmt.Errorf("output %s would overwrite its input", outPath)
	}

	workDir, err := os.MkdirTemp(p.tempDir, "normalize-*")
	if err != nil {
		return stats, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	doc, err := LoadDocument(pdfPath, workDir)
	if err != nil {
		return stats, err
	}
	if meta != nil {
		doc.Metadata = mergeMetadata(*meta, doc.Metadata)
	}
	p.logger.Debug("Read %d pages from %s", doc.Len(), pdfPath)

	out, err := p.assembler.Transform(ctx, doc)
	if err != nil {
		return stats, fmt.Errorf("failed to transform %s: %w", filepath.Base(pdfPath), err)
	}

	if err := p.writer.Write(out, outPath); err != nil {
		return stats, err
	}

	summary := assembler.Summarize(doc)
	stats.OutputPath = outPath
	stats.PageCount = summary.Pages
	stats.RightOf = summary.RightOf
	stats.Below = summary.Below

	p.logger.Info("Wrote %s (%d pages: %d widened, %d lengthened)",
		outPath, stats.PageCount, stats.RightOf, stats.Below)
	return stats, nil
}

// mergeMetadata prefers the Word document's properties and fills gaps from
// the PDF's info dictionary.
func mergeMetadata(primary, fallback layout.Metadata) layout.Metadata {
	if primary.Title == "" {
		primary.Title = fallback.Title
	}
	if primary.Author == "" {
		primary.Author = fallback.Author
	}
	if primary.Subject == "" {
		primary.Subject = fallback.Subject
	}
	if len(primary.Keywords) == 0 {
		primary.Keywords = fallback.Keywords
	}
	return primary
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

func (p *Processor) Cleanup() error {
	return os.RemoveAll(p.tempDir)
}
