package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-flash"

// ErrNoContent is returned when every candidate comes back without text.
var ErrNoContent = errors.New("no summary returned")

type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiService opens a Gemini client whose model is framed by systemInstruction.
func NewGeminiService(ctx context.Context, apiKey, modelName, systemInstruction string) (*GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is required for Gemini provider")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))

	return &GeminiService{client: client, model: model}, nil
}

// Generate sends one user message and returns the first text answer.
// Upstream failures are returned untouched so callers can inspect them.
func (g *GeminiService) Generate(ctx context.Context, userMessage string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		if sb.Len() > 0 {
			break
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrNoContent
	}
	return out, nil
}

func (g *GeminiService) Close() error {
	return g.client.Close()
}
