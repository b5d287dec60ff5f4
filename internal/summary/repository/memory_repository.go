package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"meeting-notes-backend/internal/summary/domain"

	"github.com/google/uuid"
)

// memorySummaryRepository keeps summaries in process memory. Nothing survives
// a restart.
type memorySummaryRepository struct {
	mu        sync.RWMutex
	summaries map[string]*domain.Summary
}

func NewMemorySummaryRepository() SummaryRepository {
	return &memorySummaryRepository{summaries: make(map[string]*domain.Summary)}
}

func (r *memorySummaryRepository) Create(_ context.Context, summary *domain.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary.ID = uuid.New().String()
	stored := *summary
	r.summaries[stored.ID] = &stored
	return nil
}

func (r *memorySummaryRepository) FindByID(_ context.Context, id string) (*domain.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.summaries[id]
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (r *memorySummaryRepository) FindRecent(_ context.Context, limit int) ([]*domain.Summary, error) {
	r.mu.RLock()
	out := make([]*domain.Summary, 0, len(r.summaries))
	for _, s := range r.summaries {
		c := *s
		out = append(out, &c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memorySummaryRepository) UpdateSummary(_ context.Context, id, summary string, updatedAt time.Time) (*domain.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.summaries[id]
	if !ok {
		return nil, nil
	}
	s.Summary = summary
	s.UpdatedAt = updatedAt
	out := *s
	return &out, nil
}

func (r *memorySummaryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.summaries[id]; !ok {
		return false, nil
	}
	delete(r.summaries, id)
	return true, nil
}
