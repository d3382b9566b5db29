package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ApologyReply is returned by Converse whenever the provider fails. The
// chat panel always has something to show.
const ApologyReply = "Sorry, I couldn't process that request. Please try again."

const refineSystemPrompt = "You refine reminder text. Given a reminder " +
	"title or description, return an improved version: clear, concise, " +
	"and actionable. Fix grammar and wording but preserve the meaning. " +
	"Return ONLY the refined text with no preamble, quotes, or commentary."

const converseSystemPrompt = "You are a helpful assistant inside a " +
	"personal reminder and calendar app. Answer questions about " +
	"organizing reminders, scheduling, and productivity. Keep responses " +
	"short and conversational; this is a small terminal panel."

// Assistant wraps a Provider with the two app-facing operations: refining
// reminder text and free-form chat. Both are total functions over their
// input: provider failures never surface as errors, only as degraded
// output.
type Assistant struct {
	provider Provider
	context  *ConversationContext
	logger   *zap.Logger
}

// NewAssistant creates an assistant over the given provider.
func NewAssistant(provider Provider, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		provider: provider,
		context:  NewConversationContext(),
		logger:   logger,
	}
}

// Refine asks the model for an improved version of the given reminder text.
// Any failure (or an empty reply) returns the input unchanged, so the caller
// can always use the result directly.
func (a *Assistant) Refine(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	out, err := a.provider.Complete(ctx, refineSystemPrompt, []Message{
		{Role: RoleUser, Content: text},
	})
	if err != nil {
		a.logger.Warn("refine failed, keeping original text",
			zap.String("provider", a.provider.Name()), zap.Error(err))
		return text
	}

	out = strings.TrimSpace(out)
	if out == "" {
		a.logger.Warn("refine returned empty text, keeping original",
			zap.String("provider", a.provider.Name()))
		return text
	}
	return out
}

// Converse sends a user message with the running conversation history and
// returns the model's reply. Failures return a fixed apology; the failed
// exchange is not recorded so a retry starts clean.
func (a *Assistant) Converse(ctx context.Context, userMsg string) string {
	history := append(a.context.GetMessages(), Message{
		Role:    RoleUser,
		Content: userMsg,
	})

	out, err := a.provider.Complete(ctx, converseSystemPrompt, history)
	if err != nil {
		a.logger.Warn("converse failed",
			zap.String("provider", a.provider.Name()), zap.Error(err))
		return ApologyReply
	}

	a.context.AddMessage(RoleUser, userMsg)
	a.context.AddMessage(RoleAssistant, out)
	return out
}

// Reset clears the conversation history.
func (a *Assistant) Reset() {
	a.context.Reset()
}
