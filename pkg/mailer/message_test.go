package mailer

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	date := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	raw, err := BuildMessage("notes@example.com", "bob@example.com", "Meeting Summary", "line one\nline two", date)
	require.NoError(t, err)

	r, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)

	subject, err := r.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Meeting Summary", subject)

	to, err := r.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "bob@example.com", to[0].Address)

	gotDate, err := r.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))

	part, err := r.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "line one")
	assert.Contains(t, string(body), "line two")
}

func TestBuildMessageRejectsBadAddress(t *testing.T) {
	_, err := BuildMessage("notes@example.com", "not an address", "s", "b", time.Now())
	assert.Error(t, err)
}

func TestNewSMTPSenderValidates(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com"})
	assert.Error(t, err)

	s, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Username: "me@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 587, s.cfg.Port)
	assert.Equal(t, "me@example.com", s.cfg.From)
}
