package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3"
)

// OllamaService implements SummarizerService using an Ollama local LLM
type OllamaService struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string, timeout time.Duration) *OllamaService {
	if baseURL == "" {
		baseURL = OllamaDefaultBaseURL
	}
	if model == "" {
		model = OllamaDefaultModel
	}
	return &OllamaService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (o *OllamaService) Provider() string {
	return string(ProviderOllama)
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error,omitempty"`
}

// Summarize implements SummarizerService
func (o *OllamaService) Summarize(ctx context.Context, text, prompt string) (string, error) {
	payload := ollamaChatRequest{
		Model: o.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: UserMessage(prompt, text)},
		},
		Stream: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: o.Provider(), Kind: ErrorKindUnknown, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ollama response: %w", err)
	}

	var result ollamaChatResponse
	decodeErr := json.Unmarshal(respBody, &result)

	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(respBody))
		if decodeErr == nil && result.Error != "" {
			message = result.Error
		}
		return "", &ProviderError{
			Provider:   o.Provider(),
			Kind:       KindFromStatus(resp.StatusCode, "", message),
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode ollama response: %w", decodeErr)
	}

	summary := strings.TrimSpace(result.Message.Content)
	if summary == "" {
		return "", &ProviderError{Provider: o.Provider(), Kind: ErrorKindUnknown, Message: ErrEmptyCompletion.Error(), Err: ErrEmptyCompletion}
	}
	return summary, nil
}
