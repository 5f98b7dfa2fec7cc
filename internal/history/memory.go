package history

import (
	"context"
	"sync"

	"github.com/hrkey/reference-validator/internal/types"
)

// MemoryStore is an in-memory history provider, used in tests and when no
// database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	prior map[string][]types.PriorSubmission
}

// NewMemoryStore creates an empty in-memory history provider.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prior: make(map[string][]types.PriorSubmission)}
}

// Add records a prior submission for a subject. Newest first, matching the
// database store's ordering.
func (m *MemoryStore) Add(subjectID string, p types.PriorSubmission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prior[subjectID] = append([]types.PriorSubmission{p}, m.prior[subjectID]...)
}

// PriorSubmissions returns up to limit prior submissions for a subject.
func (m *MemoryStore) PriorSubmissions(_ context.Context, subjectID string, limit int) ([]types.PriorSubmission, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.prior[subjectID]
	if len(stored) > limit {
		stored = stored[:limit]
	}

	out := make([]types.PriorSubmission, len(stored))
	copy(out, stored)
	return out, nil
}
