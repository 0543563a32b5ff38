package converter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kpauljoseph/notesmargin/internal/config"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
)

// ExportFilterPDF is the office export filter used for Word documents.
const ExportFilterPDF = "pdf:writer_pdf_Export"

var ErrConversion = errors.New("document conversion failed")

// ConversionError is returned by every DocumentConverter. It matches
// ErrConversion with errors.Is and unwraps to the backend's own error.
type ConversionError struct {
	Source  string
	Backend string
	Err     error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: converting %s: %v", e.Backend, e.Source, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// DocumentConverter turns a word-processing document into a PDF written
// inside outDir and returns the PDF's path.
type DocumentConverter interface {
	Convert(ctx context.Context, sourcePath, outDir string) (string, error)
}

func New(cfg config.ConverterConfig, logger *logger.Logger) (DocumentConverter, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	switch cfg.Backend {
	case "", "libreoffice":
		return NewLibreOffice(cfg.LibreOffice.Binary, timeout, logger), nil
	case "gotenberg":
		return NewGotenberg(cfg.Gotenberg.URL, timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown converter backend %q", cfg.Backend)
	}
}
