package assembler

import (
	"context"
	"errors"
	"fmt"

	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
)

var ErrEmptyDocument = errors.New("document has no pages")

type Stats struct {
	Pages   int
	RightOf int
	Below   int
}

// Assembler holds no per-document state; Transform may be called any number
// of times.
type Assembler struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Transform pairs every page of doc with a blank page of the same size and
// returns the composed pages in input order. An empty document is rejected
// with ErrEmptyDocument.
func (a *Assembler) Transform(ctx context.Context, doc *layout.Document) (*layout.Document, error) {
	if doc.Len() == 0 {
		return nil, ErrEmptyDocument
	}

	out := layout.NewDocument(doc.Source)
	out.Metadata = doc.Metadata

	for i, page := range doc.Pages() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		blank, err := layout.NewBlankLike(page)
		if err != nil {
			return nil, fmt.Errorf("failed to create blank for page %d: %w", i+1, err)
		}

		placement := layout.Route(page)
		composed := layout.Compose(page, blank, placement)

		a.logger.Debug("Page %d: %s %s -> %s, composed %s",
			i+1, page.Box(), page.Box().Orientation(), placement, composed.Box())

		out.Append(composed)
	}

	return out, nil
}

// Summarize counts how Transform will place the pages of doc.
func Summarize(doc *layout.Document) Stats {
	stats := Stats{Pages: doc.Len()}
	for _, page := range doc.Pages() {
		if layout.Route(page) == layout.RightOf {
			stats.RightOf++
		} else {
			stats.Below++
		}
	}
	return stats
}
