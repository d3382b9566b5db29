package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubProvider returns a canned reply or error.
type stubProvider struct {
	reply string
	err   error

	lastSystem   string
	lastMessages []Message
	calls        int
}

func (s *stubProvider) Complete(_ context.Context, system string, messages []Message) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastMessages = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubProvider) Name() string { return "stub" }

func TestRefineReturnsModelOutput(t *testing.T) {
	p := &stubProvider{reply: "  Call the dentist to book a cleaning  "}
	a := NewAssistant(p, nil)

	got := a.Refine(context.Background(), "call dentist abt cleaning??")
	assert.Equal(t, "Call the dentist to book a cleaning", got)
}

func TestRefineFailureReturnsInputUnchanged(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	a := NewAssistant(p, nil)

	in := "call dentist abt cleaning??"
	assert.Equal(t, in, a.Refine(context.Background(), in))
}

func TestRefineEmptyReplyReturnsInputUnchanged(t *testing.T) {
	p := &stubProvider{reply: "   "}
	a := NewAssistant(p, nil)

	in := "water the plants"
	assert.Equal(t, in, a.Refine(context.Background(), in))
}

func TestRefineSkipsBlankInput(t *testing.T) {
	p := &stubProvider{reply: "anything"}
	a := NewAssistant(p, nil)

	assert.Equal(t, "   ", a.Refine(context.Background(), "   "))
	assert.Zero(t, p.calls, "blank input should not hit the provider")
}

func TestConverseRecordsHistory(t *testing.T) {
	p := &stubProvider{reply: "Try a weekly recurring reminder."}
	a := NewAssistant(p, nil)

	got := a.Converse(context.Background(), "how do I track chores?")
	assert.Equal(t, "Try a weekly recurring reminder.", got)
	assert.Equal(t, 2, a.context.Len())

	// The second exchange carries the earlier messages.
	a.Converse(context.Background(), "and groceries?")
	assert.Len(t, p.lastMessages, 3)
	assert.Equal(t, RoleUser, p.lastMessages[0].Role)
	assert.Equal(t, "and groceries?", p.lastMessages[2].Content)
}

func TestConverseFailureReturnsApology(t *testing.T) {
	p := &stubProvider{err: errors.New("timeout")}
	a := NewAssistant(p, nil)

	got := a.Converse(context.Background(), "hello?")
	assert.Equal(t, ApologyReply, got)
	assert.Zero(t, a.context.Len(), "failed exchange should not be recorded")
}

func TestResetClearsHistory(t *testing.T) {
	p := &stubProvider{reply: "ok"}
	a := NewAssistant(p, nil)

	a.Converse(context.Background(), "hi")
	a.Reset()
	assert.Zero(t, a.context.Len())
}

func TestConversationContextTrimsKeepingFirst(t *testing.T) {
	c := NewConversationContext()
	c.AddMessage(RoleUser, "first")
	for i := 0; i < 25; i++ {
		c.AddMessage(RoleAssistant, "filler")
	}

	msgs := c.GetMessages()
	assert.Len(t, msgs, 20)
	assert.Equal(t, "first", msgs[0].Content)
}
