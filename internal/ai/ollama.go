package ai

import (
	"context"
	"fmt"
	"strings"

	ollama "github.com/jmorganca/ollama/api"
)

// chatClient is the slice of the Ollama client the generator uses.
type chatClient interface {
	Chat(ctx context.Context, req *ollama.ChatRequest, fn ollama.ChatResponseFunc) error
	Heartbeat(ctx context.Context) error
}

// OllamaGenerator implements Generator against a local or remote Ollama
// server. The server address comes from OLLAMA_HOST.
type OllamaGenerator struct {
	Model       string
	System      string
	Temperature float64
	client      chatClient
}

// NewOllamaGenerator creates a generator using the environment's Ollama
// client.
func NewOllamaGenerator(model, system string) (*OllamaGenerator, error) {
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("could not create ollama client: %w", err)
	}
	return &OllamaGenerator{Model: model, System: system, Temperature: 0.4, client: client}, nil
}

// Generate streams a chat completion and returns the concatenated text.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var messages []ollama.Message
	if g.System != "" {
		messages = append(messages, ollama.Message{Role: "system", Content: g.System})
	}
	messages = append(messages, ollama.Message{Role: "user", Content: prompt})

	req := &ollama.ChatRequest{
		Model:    strings.TrimPrefix(g.Model, "ollama:"),
		Messages: messages,
		Options: map[string]interface{}{
			"temperature": g.Temperature,
			"num_ctx":     contextSize(prompt),
		},
	}

	var b strings.Builder
	err := g.client.Chat(ctx, req, func(res ollama.ChatResponse) error {
		b.WriteString(res.Message.Content)
		return nil
	})
	if err != nil {
		if looksRateLimited(err.Error()) {
			return "", &RateLimitError{Backend: "ollama", UnderlyingErr: err}
		}
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	out := b.String()
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// contextSize estimates num_ctx from the prompt, at about four characters
// per token plus room for the answer.
func contextSize(prompt string) int {
	n := len(prompt)/4 + 2048
	if n < 4096 {
		return 4096
	}
	return n
}

// Available pings the Ollama server.
func (g *OllamaGenerator) Available(ctx context.Context) error {
	if err := g.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama server unreachable: %w", err)
	}
	return nil
}
