package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meeting-notes-backend/pkg/gemini"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType
	APIKey   string
	BaseURL  string // OpenAI-compatible or Ollama endpoint; provider default when empty
	Model    string // provider default when empty
	Timeout  time.Duration
}

// NewSummarizerService creates a SummarizerService based on the config.
// Switch AI provider by changing cfg.Provider.
func NewSummarizerService(ctx context.Context, cfg Config) (SummarizerService, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	switch ProviderType(strings.ToLower(string(cfg.Provider))) {
	case ProviderGroq, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for Groq provider")
		}
		return NewChatCompletionService(string(ProviderGroq), cfg.APIKey, orDefault(cfg.BaseURL, GroqBaseURL), orDefault(cfg.Model, GroqDefaultModel), cfg.Timeout), nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewChatCompletionService(string(ProviderOpenAI), cfg.APIKey, orDefault(cfg.BaseURL, OpenAIBaseURL), orDefault(cfg.Model, OpenAIDefaultModel), cfg.Timeout), nil

	case ProviderGemini:
		svc, err := gemini.NewGeminiService(ctx, cfg.APIKey, cfg.Model, SystemInstruction)
		if err != nil {
			return nil, err
		}
		return &GeminiSummarizer{svc: svc, timeout: cfg.Timeout}, nil

	case ProviderOllama:
		return NewOllamaService(cfg.BaseURL, cfg.Model, cfg.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// GeminiSummarizer adapts the Gemini client to SummarizerService.
type GeminiSummarizer struct {
	svc     *gemini.GeminiService
	timeout time.Duration
}

func (g *GeminiSummarizer) Provider() string {
	return string(ProviderGemini)
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, text, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	summary, err := g.svc.Generate(ctx, UserMessage(prompt, text))
	if err != nil {
		return "", geminiError(err)
	}
	return summary, nil
}

func (g *GeminiSummarizer) Close() error {
	return g.svc.Close()
}

func geminiError(err error) error {
	provider := string(ProviderGemini)

	if errors.Is(err, gemini.ErrNoContent) {
		return &ProviderError{Provider: provider, Kind: ErrorKindUnknown, Message: ErrEmptyCompletion.Error(), Err: ErrEmptyCompletion}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &ProviderError{
			Provider:   provider,
			Kind:       KindFromStatus(gerr.Code, "", gerr.Message),
			StatusCode: gerr.Code,
			Message:    gerr.Message,
			Err:        err,
		}
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPCode()
		if status < 0 {
			status = 0
		}
		return &ProviderError{
			Provider:   provider,
			Kind:       KindFromStatus(status, apiErr.Reason(), apiErr.Error()),
			StatusCode: status,
			Message:    apiErr.Error(),
			Err:        err,
		}
	}

	return &ProviderError{Provider: provider, Kind: Classify(err), Message: err.Error(), Err: err}
}
