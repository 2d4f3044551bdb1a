package catalogstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/greenthumb/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory run store. The default backend for
// development and tests; runs vanish on restart.
type MemoryStore struct {
	runs  map[string]*domain.ConsolidationRun
	mutex sync.RWMutex
}

// NewMemoryStore creates an empty in-memory run store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*domain.ConsolidationRun),
	}
}

// SaveRun stores a completed run. The run is serialized and deserialized so
// the stored copy is detached from the caller's memory, matching how the
// SQLite backend behaves.
func (s *MemoryStore) SaveRun(ctx context.Context, run *domain.ConsolidationRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidRequest
	}

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	var detached domain.ConsolidationRun
	if err := json.Unmarshal(data, &detached); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.runs[detached.ID] = &detached
	return nil
}

// GetRun retrieves one run by ID
func (s *MemoryStore) GetRun(ctx context.Context, id string) (*domain.ConsolidationRun, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

// ListRuns returns summaries of every stored run, newest first
func (s *MemoryStore) ListRuns(ctx context.Context) ([]domain.RunSummary, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summaries := make([]domain.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		summaries = append(summaries, run.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].StartedAt.Equal(summaries[j].StartedAt) {
			return summaries[i].StartedAt.After(summaries[j].StartedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

// Size returns the number of stored runs
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.runs)
}
