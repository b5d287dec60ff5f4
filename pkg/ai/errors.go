package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies generation failures for status mapping.
type ErrorKind string

const (
	ErrorKindRateLimit ErrorKind = "rate_limit"
	ErrorKindQuota     ErrorKind = "quota"
	ErrorKindAuth      ErrorKind = "auth"
	ErrorKindUnknown   ErrorKind = "unknown"
)

// ErrEmptyCompletion is returned when the provider answers without any text.
var ErrEmptyCompletion = errors.New("no summary returned")

// ProviderError carries a structured classification of an upstream failure.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s api error: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s api error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindFromStatus maps an HTTP status and provider error code to a kind.
// Unknown combinations fall through to the message shim.
func KindFromStatus(status int, code, message string) ErrorKind {
	code = strings.ToLower(code)
	switch {
	case code == "insufficient_quota" || strings.Contains(code, "quota"):
		return ErrorKindQuota
	case code == "rate_limit_exceeded" || strings.Contains(code, "rate_limit"):
		return ErrorKindRateLimit
	case code == "invalid_api_key" || code == "api_key_invalid":
		return ErrorKindAuth
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorKindAuth
	case http.StatusTooManyRequests:
		if strings.Contains(strings.ToLower(message), "quota") {
			return ErrorKindQuota
		}
		return ErrorKindRateLimit
	}

	return classifyMessage(message)
}

// Classify returns the kind of err. Structured provider errors win; anything
// else is classified by substring matching on the message.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}

	var perr *ProviderError
	if errors.As(err, &perr) && perr.Kind != "" {
		return perr.Kind
	}

	return classifyMessage(err.Error())
}

var (
	rateLimitIndicators = []string{"rate_limit", "rate limit", "too many requests"}
	quotaIndicators     = []string{"quota", "resource_exhausted", "resource exhausted"}
	authIndicators      = []string{"invalid api key", "invalid_api_key", "api key not valid", "unauthorized", "unauthenticated"}
)

func classifyMessage(message string) ErrorKind {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, rateLimitIndicators):
		return ErrorKindRateLimit
	case containsAny(lower, quotaIndicators):
		return ErrorKindQuota
	case containsAny(lower, authIndicators):
		return ErrorKindAuth
	default:
		return ErrorKindUnknown
	}
}

func containsAny(s string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}
