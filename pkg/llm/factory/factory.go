package factory

import (
	"context"
	"fmt"

	"question-bank-be/pkg/llm"
	"question-bank-be/pkg/llm/gemini"
	"question-bank-be/pkg/llm/ollama"
)

// Settings selects and configures a generation backend.
type Settings struct {
	Provider string // "ollama" or "gemini"
	Model    string
	BaseURL  string // ollama only
	APIKey   string // gemini only
}

func NewLLMProvider(ctx context.Context, s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "ollama", "":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), nil
	case "gemini":
		return gemini.NewGeminiProvider(ctx, s.APIKey, s.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
