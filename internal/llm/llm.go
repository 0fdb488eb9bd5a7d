// Package llm provides text-completion backends for the weekly summary and
// chat features: an OpenAI-backed client and a deterministic rule-based
// companion used as a fallback when no provider is configured or a call
// fails.
package llm

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation sent to a completion backend.
type Message struct {
	Role    string
	Content string
}

// Completion is the result of a completion call.
type Completion struct {
	Content    string
	TokensUsed int
	Model      string
}

// Completer produces a text completion for a conversation. Implementations
// must honor ctx cancellation and deadlines.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (*Completion, error)
}
