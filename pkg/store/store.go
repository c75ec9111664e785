// Package store persists analysis reports for later retrieval.
//
// Persistence is optional: the CLI and server only write reports when a
// store backend is configured. The MongoDB backend is suited to shared
// deployments; the memory backend backs tests and single-process use.
package store

import (
	"context"

	"github.com/mwittig/packsize/pkg/analyzer"
)

// Store archives analysis reports keyed by report ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save archives a report. Saving the same ID twice is an error.
	Save(ctx context.Context, report *analyzer.Report) error
	// Get retrieves a report by ID, returning a REPORT_NOT_FOUND error when
	// no report with that ID exists.
	Get(ctx context.Context, id string) (*analyzer.Report, error)
	// List returns the most recent reports, newest first, up to limit.
	// A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]analyzer.Report, error)
	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
