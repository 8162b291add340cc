// Package store persists completed research runs so the export surface can
// work without re-running research.
package store

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/collab-radar/internal/model"
)

// ErrNoRuns means no research run has completed yet.
var ErrNoRuns = eris.New("store: no runs recorded")

// Store persists research runs.
type Store interface {
	SaveRun(ctx context.Context, run model.ResearchRun) error
	GetRun(ctx context.Context, id string) (*model.ResearchRun, error)
	LastRun(ctx context.Context) (*model.ResearchRun, error)
	Close() error
}

// MemoryStore keeps runs in process memory. Used when no database path is
// configured and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	runs  map[string]model.ResearchRun
	order []string
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{runs: make(map[string]model.ResearchRun)}
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.ResearchRun) error {
	if run.ID == "" {
		return eris.New("store: run ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[run.ID]; !ok {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (*model.ResearchRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, eris.Errorf("store: run not found: %s", id)
	}
	return &run, nil
}

func (s *MemoryStore) LastRun(_ context.Context) (*model.ResearchRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.order) == 0 {
		return nil, ErrNoRuns
	}
	run := s.runs[s.order[len(s.order)-1]]
	return &run, nil
}

func (s *MemoryStore) Close() error { return nil }
