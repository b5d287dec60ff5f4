package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaSummarize(t *testing.T) {
	var got ollamaChatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":" summary text "},"done":true}`))
	}))
	defer ts.Close()

	svc := NewOllamaService(ts.URL+"/", "", time.Second)
	summary, err := svc.Summarize(context.Background(), "transcript", "Summarize:")
	require.NoError(t, err)

	assert.Equal(t, "summary text", summary)
	assert.Equal(t, OllamaDefaultModel, got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, SystemInstruction, got.Messages[0].Content)
	assert.Equal(t, "Summarize:\n\ntranscript", got.Messages[1].Content)
}

func TestOllamaErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llama3' not found"}`))
	}))
	defer ts.Close()

	svc := NewOllamaService(ts.URL, "llama3", time.Second)
	_, err := svc.Summarize(context.Background(), "transcript", "prompt")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
	assert.Equal(t, "model 'llama3' not found", perr.Message)
	assert.Equal(t, ErrorKindUnknown, perr.Kind)
}
