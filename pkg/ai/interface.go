package ai

import (
	"context"
)

// SystemInstruction frames every generation call.
const SystemInstruction = "You are a meeting summarizer"

// SummarizerService is the interface for transcript summarization.
// Implement this interface to add new AI providers (Groq, OpenAI, Gemini, Ollama, etc.)
type SummarizerService interface {
	// Summarize returns a single trimmed completion for prompt + transcript.
	Summarize(ctx context.Context, text, prompt string) (string, error)
	// Provider names the backing service, used in logs and metrics.
	Provider() string
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
)

// UserMessage joins the instruction and the transcript with a blank line.
func UserMessage(prompt, text string) string {
	return prompt + "\n\n" + text
}
