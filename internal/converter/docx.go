package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tsawler/tabula/docx"

	"github.com/kpauljoseph/notesmargin/internal/layout"
)

const WordExtension = ".docx"

var ErrNotWordDocument = errors.New("not a Word document")

// IsWordDocument checks the file name only.
func IsWordDocument(path string) bool {
	return strings.EqualFold(filepath.Ext(path), WordExtension)
}

// Inspect opens a .docx package to make sure it is readable before it is
// handed to the renderer, and returns its document properties.
func Inspect(path string) (layout.Metadata, error) {
	if !IsWordDocument(path) {
		return layout.Metadata{}, fmt.Errorf("%w: %s must end in %s", ErrNotWordDocument, path, WordExtension)
	}

	r, err := docx.Open(path)
	if err != nil {
		return layout.Metadata{}, fmt.Errorf("%w: %s: %v", ErrNotWordDocument, path, err)
	}
	defer r.Close()

	meta := r.Metadata()
	return layout.Metadata{
		Title:    meta.Title,
		Author:   meta.Author,
		Subject:  meta.Subject,
		Keywords: meta.Keywords,
	}, nil
}
