package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mwittig/packsize/pkg/analyzer"
	"github.com/mwittig/packsize/pkg/errors"
)

// MemoryStore keeps reports in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]analyzer.Report
}

// NewMemoryStore creates an empty in-memory report store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]analyzer.Report)}
}

// Save archives a report.
func (s *MemoryStore) Save(ctx context.Context, report *analyzer.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[report.ID]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "report %s already saved", report.ID)
	}
	s.reports[report.ID] = *report
	return nil
}

// Get retrieves a report by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*analyzer.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeReportNotFound, "report not found: %s", id)
	}
	return &r, nil
}

// List returns reports newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]analyzer.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]analyzer.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
