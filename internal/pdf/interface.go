package pdf

import (
	"context"

	"github.com/kpauljoseph/notesmargin/pkg/models"
)

type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, path string) (models.ProcessingStats, error)
	Cleanup() error
}
