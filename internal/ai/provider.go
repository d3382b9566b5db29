// Package ai provides the optional assistant features: refining reminder
// text and a small chat panel. Everything here degrades gracefully when the
// backing model is unreachable.
package ai

import "context"

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in the conversation history.
type Message struct {
	Role    Role
	Content string
}

// Provider is a single-turn completion backend. Implementations wrap one
// hosted model API.
type Provider interface {
	// Complete sends the system prompt and message history and returns the
	// model's text reply.
	Complete(ctx context.Context, system string, messages []Message) (string, error)

	// Name identifies the provider for logs.
	Name() string
}
