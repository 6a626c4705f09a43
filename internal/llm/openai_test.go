package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIGenerator_EndpointNormalization(t *testing.T) {
	cases := map[string]string{
		"":                          "https://api.openai.com/v1/chat/completions",
		"https://llm.local":         "https://llm.local/v1/chat/completions",
		"https://llm.local/v1":      "https://llm.local/v1/chat/completions",
		"https://llm.local/v1/chat/completions": "https://llm.local/v1/chat/completions",
	}
	for base, want := range cases {
		g := NewOpenAIGenerator("key", "model", base)
		assert.Equal(t, want, g.endpoint, "base %q", base)
	}
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "GUARDRAILS")

		json.NewEncoder(w).Encode(openAIChatResponse{
			Choices: []struct {
				Message openAIChatMessage `json:"message"`
			}{
				{Message: openAIChatMessage{Role: "assistant", Content: "## Player Overview\nGood wheels."}},
			},
		})
	}))
	defer srv.Close()

	g := NewOpenAIGenerator("test-key", "test-model", srv.URL)
	out, err := g.Generate(context.Background(), "**NON-NEGOTIABLE GUARDRAILS** ...")
	require.NoError(t, err)
	assert.Equal(t, "## Player Overview\nGood wheels.", out)
}

func TestOpenAIGenerator_GenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewOpenAIGenerator("test-key", "test-model", srv.URL)
	_, err := g.Generate(context.Background(), "prompt")
	assert.ErrorContains(t, err, "429")
}

func TestCleanOutput_StripsWrappingFence(t *testing.T) {
	assert.Equal(t, "# Report\nBody.", cleanOutput("```markdown\n# Report\nBody.\n```"))
	assert.Equal(t, "plain text", cleanOutput("  plain text\n"))
}
