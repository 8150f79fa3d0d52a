package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicBackend completes prompts through the synchronous messages API.
type AnthropicBackend struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicBackend constructs a backend for the given credentials.
func NewAnthropicBackend(apiKey, model string, maxTokens int) *AnthropicBackend {
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &AnthropicBackend{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (b *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: int64(b.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: completion: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
