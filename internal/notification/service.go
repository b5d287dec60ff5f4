package notification

import (
	"context"
	"fmt"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/pkg/logger"
	"meeting-notes-backend/pkg/mailer"
	"meeting-notes-backend/pkg/metrics"
)

// Service delivers plain-text email through one configured transport.
type Service struct {
	sender  mailer.Sender
	metrics *metrics.Metrics
}

// NewService wraps sender. m may be nil.
func NewService(sender mailer.Sender, m *metrics.Metrics) *Service {
	return &Service{sender: sender, metrics: m}
}

func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	err := s.sender.Send(ctx, to, subject, body)
	s.record(err)
	if err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}
	return nil
}

// SendAll sends the same message to every recipient, one after another.
// A failure does not stop the remaining sends; the returned slice has one
// entry per recipient, in order.
func (s *Service) SendAll(ctx context.Context, recipients []string, subject, body string) []domain.DeliveryResult {
	results := make([]domain.DeliveryResult, 0, len(recipients))
	for _, to := range recipients {
		result := domain.DeliveryResult{Recipient: to, Success: true}
		if err := s.Send(ctx, to, subject, body); err != nil {
			logger.ErrorErr(ctx, "email delivery failed", err, "recipient", to)
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (s *Service) record(err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.EmailsSent.WithLabelValues(outcome).Inc()
}
