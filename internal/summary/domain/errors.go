package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("summary not found")

// ValidationError is returned for missing or malformed input. Message is
// safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// UpstreamKind mirrors the generation service failure categories.
type UpstreamKind string

const (
	UpstreamRateLimit UpstreamKind = "rate_limit"
	UpstreamQuota     UpstreamKind = "quota"
	UpstreamAuth      UpstreamKind = "auth"
	UpstreamUnknown   UpstreamKind = "unknown"
)

// UpstreamError wraps a failed generation call.
type UpstreamError struct {
	Kind     UpstreamKind
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s generation failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failed repository call.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DeliveryError is returned when at least one recipient could not be reached.
// Results holds the outcome for every recipient, including the successful ones.
type DeliveryError struct {
	Results []DeliveryResult
}

func (e *DeliveryError) Error() string {
	failed := 0
	for _, r := range e.Results {
		if !r.Success {
			failed++
		}
	}
	return fmt.Sprintf("failed to deliver to %d of %d recipient(s)", failed, len(e.Results))
}
