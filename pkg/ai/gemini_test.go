package ai

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"meeting-notes-backend/pkg/gemini"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func grpcAPIError(t *testing.T, code codes.Code, msg string) error {
	t.Helper()
	apiErr, ok := apierror.FromError(status.Error(code, msg))
	require.True(t, ok)
	return apiErr
}

func TestGeminiErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   ErrorKind
		wantStatus int
	}{
		{
			name:       "http rate limit",
			err:        &googleapi.Error{Code: http.StatusTooManyRequests, Message: "Too many requests, slow down"},
			wantKind:   ErrorKindRateLimit,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "http quota",
			err:        fmt.Errorf("generate: %w", &googleapi.Error{Code: http.StatusTooManyRequests, Message: "Resource has been exhausted (e.g. check quota)."}),
			wantKind:   ErrorKindQuota,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "http bad key",
			err:        &googleapi.Error{Code: http.StatusBadRequest, Message: "API key not valid. Please pass a valid API key."},
			wantKind:   ErrorKindAuth,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:     "grpc quota",
			err:      grpcAPIError(t, codes.ResourceExhausted, "Quota exceeded for aiplatform.googleapis.com"),
			wantKind: ErrorKindQuota,
		},
		{
			name:     "grpc unauthenticated",
			err:      grpcAPIError(t, codes.Unauthenticated, "request is unauthenticated"),
			wantKind: ErrorKindAuth,
		},
		{
			name:     "grpc internal",
			err:      grpcAPIError(t, codes.Internal, "internal error"),
			wantKind: ErrorKindUnknown,
		},
		{
			name:     "plain error",
			err:      errors.New("dial tcp: connection refused"),
			wantKind: ErrorKindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := geminiError(tt.err)

			var perr *ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "gemini", perr.Provider)
			assert.Equal(t, tt.wantKind, perr.Kind)
			assert.Equal(t, tt.wantStatus, perr.StatusCode)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantKind, Classify(fmt.Errorf("summarize: %w", err)))
		})
	}
}

func TestGeminiEmptyContentIsEmptyCompletion(t *testing.T) {
	err := geminiError(gemini.ErrNoContent)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorKindUnknown, perr.Kind)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
