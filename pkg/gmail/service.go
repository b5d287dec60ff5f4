package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"meeting-notes-backend/pkg/mailer"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Config holds the OAuth client and the long-lived refresh token of the
// account that sends summaries.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	From         string
	Timeout      time.Duration
}

// Sender delivers mail through the Gmail API instead of SMTP.
type Sender struct {
	srv     *gmail.Service
	from    string
	timeout time.Duration
	now     func() time.Time
}

func NewSender(ctx context.Context, cfg Config) (*Sender, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN are required for gmail transport")
	}
	if cfg.From == "" {
		return nil, errors.New("EMAIL_USER is required for gmail transport")
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	// An expired token forces a refresh on first use.
	token := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now(),
	}
	client := oauth2.NewClient(ctx, config.TokenSource(ctx, token))

	return newSender(ctx, cfg, option.WithHTTPClient(client))
}

func newSender(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Sender, error) {
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Sender{srv: srv, from: cfg.From, timeout: timeout, now: time.Now}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	raw, err := mailer.BuildMessage(s.from, to, subject, body, s.now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}
	if _, err := s.srv.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to send message to %s: %w", to, err)
	}

	return nil
}

var _ mailer.Sender = (*Sender)(nil)
