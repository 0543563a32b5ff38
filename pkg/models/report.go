package models

import (
	"time"

	"github.com/kpauljoseph/notesmargin/pkg/logger"
)

// ProcessingStats describes one transformed document.
type ProcessingStats struct {
	SourcePath string
	PDFPath    string
	OutputPath string
	PageCount  int
	RightOf    int
	Below      int
}

// ProcessingReport accumulates results over a run.
type ProcessingReport struct {
	StartTime    time.Time
	EndTime      time.Time
	Processed    int
	Failed       int
	TotalPages   int
	Outputs      []string
	FailedInputs []string
}

func NewProcessingReport() *ProcessingReport {
	return &ProcessingReport{StartTime: time.Now()}
}

func (r *ProcessingReport) AddSuccess(stats ProcessingStats) {
	r.Processed++
	r.TotalPages += stats.PageCount
	r.Outputs = append(r.Outputs, stats.OutputPath)
}

func (r *ProcessingReport) AddFailure(path string) {
	r.Failed++
	r.FailedInputs = append(r.FailedInputs, path)
}

func (r *ProcessingReport) HasFailures() bool {
	return r.Failed > 0
}

func (r *ProcessingReport) Finish() {
	r.EndTime = time.Now()
}

func (r *ProcessingReport) Print(log *logger.Logger) {
	log.Info("Processing complete:")
	log.Info("- Documents transformed: %d", r.Processed)
	log.Info("- Documents failed: %d", r.Failed)
	log.Info("- Pages written: %d", r.TotalPages)
	for _, out := range r.Outputs {
		log.Info("- Output: %s", out)
	}
	for _, in := range r.FailedInputs {
		log.Info("- Failed: %s", in)
	}
	if !r.EndTime.IsZero() {
		log.Info("- Time taken: %s", r.EndTime.Sub(r.StartTime).Round(time.Millisecond))
	}
}
