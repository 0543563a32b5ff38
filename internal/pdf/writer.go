package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gofpdf "github.com/lvillar/gofpdf"
	"github.com/lvillar/gofpdf/contrib/gofpdi"

	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
	"github.com/kpauljoseph/notesmargin/pkg/version"
)

var errNothingToWrite = errors.New("no pages to write")

// Writer serializes composed documents. Each source page is imported once
// as a form template and stamped at the offset recorded in its stream.
type Writer struct {
	validate bool
	logger   *logger.Logger
}

func NewWriter(validate bool, logger *logger.Logger) *Writer {
	return &Writer{
		validate: validate,
		logger:   logger,
	}
}

// Write renders doc to outPath. The file is built next to outPath and only
// renamed into place once it is complete (and valid, when validation is on).
func (w *Writer) Write(doc *layout.Document, outPath string) error {
	if doc.Len() == 0 {
		return errNothingToWrite
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pdf, err := w.build(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".notesmargin-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temporary output: %w", err)
	}
	tmpPath := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpPath)
		}
	}()

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	if w.validate {
		if err := ValidateFile(tmpPath); err != nil {
			return err
		}
		w.logger.Debug("Output passed validation")
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	renamed = true

	w.logger.Debug("Wrote %d pages to %s", doc.Len(), outPath)
	return nil
}

func (w *Writer) build(doc *layout.Document) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCreator(version.Producer(), true)
	setMetadata(pdf, doc.Metadata)

	imp := gofpdi.NewImporter()
	templates := newTemplateStore()

	for i, page := range doc.Pages() {
		box := page.Box()
		// "P" keeps the size as given; gofpdf would swap it for "L".
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: box.Width, Ht: box.Height})

		for _, s := range page.Streams() {
			tpl, err := templates.load(pdf, imp, s.Source)
			if err != nil {
				return nil, fmt.Errorf("failed to import page %d of %s: %w", s.Source.PageNumber, s.Source.Path, err)
			}
			x, y := placement(s)
			w.logger.Trace("Page %d: stamping %s#%d at (%.2f, %.2f)", i+1, filepath.Base(s.Source.Path), s.Source.PageNumber, x, y)
			imp.UseImportedTemplate(pdf, tpl, x, y, s.Box.Width, s.Box.Height)
		}

		if pdf.Err() {
			return nil, fmt.Errorf("failed to compose page %d: %w", i+1, pdf.Error())
		}
	}

	return pdf, nil
}

// placement converts a stream's y-up offset into gofpdf's top-left, y-down
// page coordinates.
func placement(s layout.Stream) (x, y float64) {
	off := s.Offset()
	return off.DX, -off.DY
}

func setMetadata(pdf *gofpdf.Fpdf, meta layout.Metadata) {
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if len(meta.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	}
}

// templateStore caches imported template IDs per source page.
type templateStore struct {
	templates map[layout.Source]int
}

func newTemplateStore() *templateStore {
	return &templateStore{templates: make(map[layout.Source]int)}
}

func (s *templateStore) load(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, src layout.Source) (tpl int, err error) {
	if tpl, ok := s.templates[src]; ok {
		return tpl, nil
	}

	// gofpdi panics on sources it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	tpl = imp.ImportPage(pdf, src.Path, src.PageNumber, "/MediaBox")
	s.templates[src] = tpl
	return tpl, nil
}
