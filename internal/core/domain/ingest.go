package domain

import "time"

// IngestReport summarises one ingest run.
type IngestReport struct {
	// ID uniquely identifies the run.
	ID string

	// Directory is the directory that was ingested.
	Directory string

	// Files is the number of documents processed.
	Files int

	// Pages is the number of pages extracted successfully.
	Pages int

	// Chunks is the number of index entries written.
	Chunks int

	// Warnings lists pages or files that were skipped.
	Warnings []*ExtractionWarning

	// StartedAt is when the run began.
	StartedAt time.Time

	// CompletedAt is when the run finished.
	CompletedAt time.Time
}

// Duration returns how long the run took.
func (r *IngestReport) Duration() time.Duration {
	if r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// AddWarning records a skipped page or file.
func (r *IngestReport) AddWarning(w *ExtractionWarning) {
	r.Warnings = append(r.Warnings, w)
}
