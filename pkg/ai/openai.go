package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	GroqBaseURL      = "https://api.groq.com/openai/v1/"
	GroqDefaultModel = "llama-3.1-8b-instant"

	OpenAIBaseURL      = "https://api.openai.com/v1/"
	OpenAIDefaultModel = "gpt-4o-mini"
)

// ChatCompletionService implements SummarizerService against any
// OpenAI-compatible chat completions API (Groq, OpenAI).
type ChatCompletionService struct {
	client   openai.Client
	model    string
	provider string
	timeout  time.Duration
}

// NewChatCompletionService creates a client for an OpenAI-compatible endpoint.
// SDK retries are disabled; a failed call surfaces to the caller once.
func NewChatCompletionService(provider, apiKey, baseURL, model string, timeout time.Duration) *ChatCompletionService {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	)

	return &ChatCompletionService{
		client:   client,
		model:    model,
		provider: provider,
		timeout:  timeout,
	}
}

func (s *ChatCompletionService) Provider() string {
	return s.provider
}

// Summarize implements SummarizerService
func (s *ChatCompletionService) Summarize(ctx context.Context, text, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemInstruction),
			openai.UserMessage(UserMessage(prompt, text)),
		},
	})
	if err != nil {
		return "", s.wrapError(err)
	}

	if len(completion.Choices) == 0 {
		return "", &ProviderError{Provider: s.provider, Kind: ErrorKindUnknown, Message: ErrEmptyCompletion.Error(), Err: ErrEmptyCompletion}
	}

	summary := strings.TrimSpace(completion.Choices[0].Message.Content)
	if summary == "" {
		return "", &ProviderError{Provider: s.provider, Kind: ErrorKindUnknown, Message: ErrEmptyCompletion.Error(), Err: ErrEmptyCompletion}
	}

	return summary, nil
}

func (s *ChatCompletionService) wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = err.Error()
		}
		return &ProviderError{
			Provider:   s.provider,
			Kind:       KindFromStatus(apiErr.StatusCode, apiErr.Code, message),
			StatusCode: apiErr.StatusCode,
			Message:    message,
			Err:        err,
		}
	}

	return &ProviderError{
		Provider: s.provider,
		Kind:     Classify(err),
		Message:  fmt.Sprintf("request failed: %v", err),
		Err:      err,
	}
}
