package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lvillar/gofpdf/reader"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/pkg/utils"
)

// ReadDocument loads the page boxes of a PDF and records each page's
// content stream as an opaque reference back to the file. The file must use
// a classic cross-reference table; see LoadDocument for arbitrary input.
func ReadDocument(path string) (*layout.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	src, err := reader.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	doc := layout.NewDocument(abs)
	doc.Metadata = metadataFromInfo(src.Metadata())

	expected, err := api.PageCountFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	for num, page := range src.Pages() {
		box := pageBox(page)

		chunks := make([][]byte, 0, len(page.Contents))
		length := 0
		for _, s := range page.Contents {
			chunks = append(chunks, s.Data)
			length += len(s.Data)
		}

		p, err := layout.NewPage(box, layout.Stream{
			Source: layout.Source{Path: abs, PageNumber: num},
			Box:    box,
			Length: length,
			Digest: utils.HashChunks(chunks...),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", num, err)
		}
		doc.Append(p)
	}

	// The reader silently yields no pages for page trees it cannot walk.
	if doc.Len() != expected {
		return nil, fmt.Errorf("failed to read %s: found %d of %d pages", filepath.Base(abs), doc.Len(), expected)
	}

	return doc, nil
}

// pageBox is the MediaBox as displayed: quarter-turn rotations swap the axes.
func pageBox(page *reader.Page) layout.Box {
	w, h := page.MediaBox.Width(), page.MediaBox.Height()
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	if rot := ((page.Rotate % 360) + 360) % 360; rot == 90 || rot == 270 {
		w, h = h, w
	}
	return layout.Box{Width: w, Height: h}
}

func metadataFromInfo(info map[string]string) layout.Metadata {
	meta := layout.Metadata{
		Title:   info["Title"],
		Author:  info["Author"],
		Subject: info["Subject"],
	}
	if kw := info["Keywords"]; kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				meta.Keywords = append(meta.Keywords, k)
			}
		}
	}
	return meta
}
