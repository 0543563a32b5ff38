package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/notesmargin/internal/layout"
)

// Normalize rewrites inPath to outPath with a classic cross-reference table
// and no object streams. The page reader and the template importer only
// understand that form.
func Normalize(inPath, outPath string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	if err := api.OptimizeFile(inPath, outPath, conf); err != nil {
		return fmt.Errorf("failed to normalize %s: %w", filepath.Base(inPath), err)
	}
	return nil
}

// LoadDocument normalizes path into workDir and reads the copy. Streams of
// the returned document reference the copy, so workDir must outlive any
// write of the document; Source still names the original file.
func LoadDocument(path, workDir string) (*layout.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	normalized := filepath.Join(workDir, base+".normalized.pdf")
	if err := Normalize(abs, normalized); err != nil {
		return nil, err
	}

	doc, err := ReadDocument(normalized)
	if err != nil {
		return nil, err
	}
	doc.Source = abs
	return doc, nil
}
