package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/internal/summary/repository"
	"meeting-notes-backend/pkg/ai"
	"meeting-notes-backend/pkg/logger"
	"meeting-notes-backend/pkg/metrics"

	"github.com/emersion/go-message/mail"
)

const (
	DefaultSubject = "Meeting Summary"
	DefaultMessage = "Please find the meeting summary below:"

	// shareTimeLayout renders timestamps in the share email body.
	shareTimeLayout = "1/2/2006, 3:04:05 PM"
)

type summaryUsecase struct {
	repo       repository.SummaryRepository
	summarizer ai.SummarizerService
	notifier   Notifier
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewSummaryUsecase creates a new SummaryUsecase. m may be nil.
func NewSummaryUsecase(repo repository.SummaryRepository, summarizer ai.SummarizerService, notifier Notifier, m *metrics.Metrics) SummaryUsecase {
	return &summaryUsecase{
		repo:       repo,
		summarizer: summarizer,
		notifier:   notifier,
		metrics:    m,
		now:        time.Now,
	}
}

// clock matches the microsecond precision of the timestamp columns.
func (u *summaryUsecase) clock() time.Time {
	return u.now().UTC().Truncate(time.Microsecond)
}

func (u *summaryUsecase) PrepareTranscript(text string) (string, int, error) {
	if strings.TrimSpace(text) == "" {
		return "", 0, domain.NewValidationError("Transcript text is empty")
	}
	return text, utf8.RuneCountInString(text), nil
}

func (u *summaryUsecase) GenerateSummary(ctx context.Context, text, prompt string) (*domain.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("Text is required")
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = domain.DefaultPrompt
	}

	start := time.Now()
	result, err := u.summarizer.Summarize(ctx, text, prompt)
	if u.metrics != nil {
		u.metrics.ObserveGeneration(time.Since(start))
	}
	if err == nil && strings.TrimSpace(result) == "" {
		err = ai.ErrEmptyCompletion
	}
	if err != nil {
		upstream := &domain.UpstreamError{
			Kind:     domain.UpstreamKind(ai.Classify(err)),
			Provider: u.summarizer.Provider(),
			Err:      err,
		}
		if u.metrics != nil {
			u.metrics.UpstreamErrors.WithLabelValues(upstream.Provider, string(upstream.Kind)).Inc()
		}
		return nil, upstream
	}

	now := u.clock()
	summary := &domain.Summary{
		OriginalText: text,
		Prompt:       prompt,
		Summary:      strings.TrimSpace(result),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.repo.Create(ctx, summary); err != nil {
		return nil, &domain.StorageError{Op: "create", Err: err}
	}
	if u.metrics != nil {
		u.metrics.SummariesCreated.Inc()
	}

	logger.Info(ctx, "summary created", "id", summary.ID, "provider", u.summarizer.Provider())
	return summary, nil
}

func (u *summaryUsecase) ListRecentSummaries(ctx context.Context) ([]domain.SummaryListItem, error) {
	summaries, err := u.repo.FindRecent(ctx, RecentLimit)
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}

	items := make([]domain.SummaryListItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, s.ListItem())
	}
	return items, nil
}

func (u *summaryUsecase) GetSummary(ctx context.Context, id string) (*domain.Summary, error) {
	summary, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Err: err}
	}
	if summary == nil {
		return nil, domain.ErrNotFound
	}
	return summary, nil
}

func (u *summaryUsecase) UpdateSummary(ctx context.Context, id, text string) (*domain.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("Summary content is required")
	}

	existing, err := u.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	updatedAt := u.clock()
	if updatedAt.Before(existing.CreatedAt) {
		updatedAt = existing.CreatedAt
	}

	updated, err := u.repo.UpdateSummary(ctx, id, text, updatedAt)
	if err != nil {
		return nil, &domain.StorageError{Op: "update", Err: err}
	}
	if updated == nil {
		// Deleted between the read and the write.
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

func (u *summaryUsecase) DeleteSummary(ctx context.Context, id string) error {
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (u *summaryUsecase) ShareSummary(ctx context.Context, req ShareRequest) ([]domain.DeliveryResult, error) {
	if strings.TrimSpace(req.ID) == "" || len(req.Recipients) == 0 {
		return nil, domain.NewValidationError("Summary ID and recipients are required")
	}

	recipients := make([]string, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		addr, err := mail.ParseAddress(strings.TrimSpace(r))
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("Invalid email address: %s", r))
		}
		recipients = append(recipients, addr.Address)
	}

	summary, err := u.GetSummary(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	subject := req.Subject
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}
	message := req.Message
	if strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}

	results := u.notifier.SendAll(ctx, recipients, subject, ComposeShareBody(summary, message))
	for _, r := range results {
		if !r.Success {
			return results, &domain.DeliveryError{Results: results}
		}
	}
	return results, nil
}

// ComposeShareBody lays out the plain-text email for a shared summary.
func ComposeShareBody(summary *domain.Summary, message string) string {
	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n\n---\n\n")
	b.WriteString(summary.Summary)
	b.WriteString("\n\n---\n\n")
	b.WriteString("Generated on: ")
	b.WriteString(summary.CreatedAt.UTC().Format(shareTimeLayout))
	if summary.WasEdited() {
		b.WriteString("\nLast updated: ")
		b.WriteString(summary.UpdatedAt.UTC().Format(shareTimeLayout))
	}
	return b.String()
}
