package llm

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

// OpenAIGenerator implements Generator against any OpenAI-compatible
// chat-completions endpoint.
type OpenAIGenerator struct {
	client   *http.Client
	apiKey   string
	model    string
	endpoint string
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIChatMessage `json:"message"`
	} `json:"choices"`
}

func NewOpenAIGenerator(apiKey, model, baseURL string) *OpenAIGenerator {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	} else {
		endpoint = strings.TrimRight(endpoint, "/")
		if !strings.HasSuffix(endpoint, "/chat/completions") {
			if strings.HasSuffix(endpoint, "/v1") {
				endpoint += "/chat/completions"
			} else {
				endpoint += "/v1/chat/completions"
			}
		}
	}
	return &OpenAIGenerator{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(openAIChatRequest{
		Model: g.model,
		Messages: []openAIChatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned %d: %s", resp.StatusCode, truncate(string(raw), 300))
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return cleanOutput(parsed.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
