package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/notesmargin/internal/converter"
	"github.com/kpauljoseph/notesmargin/internal/pdf"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
	"github.com/kpauljoseph/notesmargin/pkg/models"
)

// lockFilePrefix marks the owner files Word leaves next to open documents.
const lockFilePrefix = "~$"

type DirectoryScanner struct {
	processor pdf.DocumentProcessor
	logger    *logger.Logger
}

func New(processor pdf.DocumentProcessor, logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		processor: processor,
		logger:    logger,
	}
}

// FindDocuments walks dir recursively and returns every Word document in
// lexical order.
func (s *DirectoryScanner) FindDocuments(ctx context.Context, dir string) ([]string, error) {
	var docs []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			s.logger.Debug("Scanning directory: %s", path)
			return nil
		}

		if !converter.IsWordDocument(path) || strings.HasPrefix(d.Name(), lockFilePrefix) {
			return nil
		}

		docs = append(docs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no Word documents found in %s or its subdirectories", dir)
	}

	sort.Strings(docs)
	return docs, nil
}

// ScanDirectory processes every Word document under dir. A failing document
// is logged and counted; only cancellation aborts the scan.
func (s *DirectoryScanner) ScanDirectory(ctx context.Context, dir string) (*models.ProcessingReport, error) {
	docs, err := s.FindDocuments(ctx, dir)
	if err != nil {
		return nil, err
	}

	report := models.NewProcessingReport()
	defer report.Finish()

	for i, path := range docs {
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}
		s.logger.Info("Processing document (%d/%d): %s", i+1, len(docs), relPath)

		stats, err := s.processor.ProcessDocument(ctx, path)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			s.logger.Error("Error processing %s: %v", relPath, err)
			report.AddFailure(path)
			continue
		}
		report.AddSuccess(stats)
	}

	return report, nil
}
