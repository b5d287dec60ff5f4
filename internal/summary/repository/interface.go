package repository

import (
	"context"
	"time"

	"meeting-notes-backend/internal/summary/domain"
)

// SummaryRepository defines the interface for summary persistence.
// Lookups of unknown ids return a nil record or false, never an error.
type SummaryRepository interface {
	Create(ctx context.Context, summary *domain.Summary) error
	FindByID(ctx context.Context, id string) (*domain.Summary, error)
	// FindRecent returns at most limit records, newest first.
	FindRecent(ctx context.Context, limit int) ([]*domain.Summary, error)
	// UpdateSummary replaces the summary text and returns the updated record.
	UpdateSummary(ctx context.Context, id, summary string, updatedAt time.Time) (*domain.Summary, error)
	Delete(ctx context.Context, id string) (bool, error)
}
