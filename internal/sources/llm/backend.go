package llm

import "context"

// TextBackend produces a completion for a prompt. Implementations are either
// the synchronous API client or the start-then-poll batch client.
type TextBackend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
