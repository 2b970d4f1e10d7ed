package postgres

import (
	"context"
	"sync"

	"github.com/healthpremium/backend/internal/domain"
)

// defaultMemoryCapacity bounds the in-memory audit trail
const defaultMemoryCapacity = 1000

// MemoryRepository implements domain.PredictionRepository without a database.
// Used when DATABASE_URL is unset or unreachable; keeps the newest entries only.
type MemoryRepository struct {
	mu       sync.RWMutex
	entries  []domain.PredictionLog
	capacity int
}

// NewMemoryRepository creates an in-memory repository holding at most capacity entries
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// SavePrediction appends an entry, evicting the oldest when full
func (r *MemoryRepository) SavePrediction(ctx context.Context, entry domain.PredictionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
	return nil
}

// ListPredictions returns up to limit entries, newest first
func (r *MemoryRepository) ListPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]domain.PredictionLog, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
