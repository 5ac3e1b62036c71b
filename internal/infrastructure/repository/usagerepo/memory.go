package usagerepo

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/kinai9661/AIPro/internal/domain/usage"
)

// MemoryRepository keeps usage in process memory. It backs the usage report
// when no database is configured; totals reset on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []domain.Record
	limit   int
}

// NewMemoryRepository retains at most limit records (oldest dropped first).
func NewMemoryRepository(limit int) *MemoryRepository {
	if limit <= 0 {
		limit = 10000
	}
	return &MemoryRepository{limit: limit}
}

func (m *MemoryRepository) Create(_ context.Context, record *domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	if over := len(m.records) - m.limit; over > 0 {
		m.records = append([]domain.Record(nil), m.records[over:]...)
	}
	return nil
}

func (m *MemoryRepository) SummarizeByModel(_ context.Context, since time.Time) ([]domain.ModelSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byModel := make(map[string]*domain.ModelSummary)
	for _, r := range m.records {
		if r.CreatedAt.Before(since) {
			continue
		}
		s, ok := byModel[r.Model]
		if !ok {
			s = &domain.ModelSummary{Model: r.Model, Cost: decimal.Zero}
			byModel[r.Model] = s
		}
		s.Generations++
		s.Images += int64(r.Images)
		if r.CacheHit {
			s.CacheHits++
		}
		s.Cost = s.Cost.Add(r.Cost)
	}

	out := make([]domain.ModelSummary, 0, len(byModel))
	for _, s := range byModel {
		out = append(out, *s)
	}
	return out, nil
}
