package llm

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces report text from an assembled instruction document.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator selects a backend by provider name.
func NewGenerator(ctx context.Context, provider, apiKey, model, baseURL string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "gemini":
		return NewGeminiGenerator(ctx, apiKey, model)
	case "openai":
		return NewOpenAIGenerator(apiKey, model, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", provider)
	}
}

// cleanOutput strips a wrapping markdown fence some models add around the
// whole answer.
func cleanOutput(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") && strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSuffix(trimmed, "```")
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}
