package usecase

import (
	"context"

	"meeting-notes-backend/internal/summary/domain"
)

// RecentLimit caps the list endpoint.
const RecentLimit = 50

// SummaryUsecase defines the interface for meeting summary use cases
type SummaryUsecase interface {
	// PrepareTranscript validates submitted text and returns its length in characters.
	PrepareTranscript(text string) (string, int, error)
	GenerateSummary(ctx context.Context, text, prompt string) (*domain.Summary, error)
	ListRecentSummaries(ctx context.Context) ([]domain.SummaryListItem, error)
	GetSummary(ctx context.Context, id string) (*domain.Summary, error)
	UpdateSummary(ctx context.Context, id, summary string) (*domain.Summary, error)
	DeleteSummary(ctx context.Context, id string) error
	ShareSummary(ctx context.Context, req ShareRequest) ([]domain.DeliveryResult, error)
}

// ShareRequest carries the optional subject and message of a share.
type ShareRequest struct {
	ID         string
	Recipients []string
	Subject    string
	Message    string
}

// Notifier sends one message to many recipients, reporting per-recipient outcomes.
type Notifier interface {
	SendAll(ctx context.Context, recipients []string, subject, body string) []domain.DeliveryResult
}
