package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, status int, body string, captured *capturedChatRequest) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), "unexpected path %s", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

const okCompletion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "llama-3.1-8b-instant",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  - Budget approved\n"}}]
}`

func TestChatCompletionSummarize(t *testing.T) {
	var captured capturedChatRequest
	ts := newChatServer(t, http.StatusOK, okCompletion, &captured)

	svc := NewChatCompletionService("groq", "test-key", ts.URL+"/", GroqDefaultModel, 5*time.Second)
	summary, err := svc.Summarize(context.Background(), "Alice and Bob discussed the budget.", "Summarize:")
	require.NoError(t, err)

	assert.Equal(t, "- Budget approved", summary)
	assert.Equal(t, GroqDefaultModel, captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, SystemInstruction, captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "Summarize:\n\nAlice and Bob discussed the budget.", captured.Messages[1].Content)
}

func TestChatCompletionErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
	}{
		{
			name:     "rate limit",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"message":"Rate limit reached for model","type":"tokens","code":"rate_limit_exceeded"}}`,
			wantKind: ErrorKindRateLimit,
		},
		{
			name:     "quota",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`,
			wantKind: ErrorKindQuota,
		},
		{
			name:     "bad key",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantKind: ErrorKindAuth,
		},
		{
			name:     "server error",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"model not found","type":"invalid_request_error","code":"model_not_found"}}`,
			wantKind: ErrorKindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newChatServer(t, tt.status, tt.body, nil)
			svc := NewChatCompletionService("groq", "test-key", ts.URL+"/", GroqDefaultModel, 5*time.Second)

			_, err := svc.Summarize(context.Background(), "text", "prompt")
			require.Error(t, err)

			var perr *ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.status, perr.StatusCode)
			assert.Equal(t, tt.wantKind, perr.Kind)
			assert.Equal(t, tt.wantKind, Classify(err))
		})
	}
}

func TestChatCompletionEmptyChoice(t *testing.T) {
	body := `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"   "}}]}`
	ts := newChatServer(t, http.StatusOK, body, nil)
	svc := NewChatCompletionService("openai", "test-key", ts.URL+"/", OpenAIDefaultModel, 5*time.Second)

	_, err := svc.Summarize(context.Background(), "text", "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
	assert.Equal(t, ErrorKindUnknown, Classify(err))
}
