package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/store"
	"github.com/hqvu/remindcal/tests/testutil"
)

func newTestGate(t *testing.T) (*Gate, *store.Reminders) {
	t.Helper()
	kv := testutil.NewTestKV(t)

	entries := store.NewReminders(kv)
	require.NoError(t, entries.Load())

	g := NewGate(kv, entries, zap.NewNop())
	require.NoError(t, g.Load())
	return g, entries
}

func sampleEntry(title string) model.Reminder {
	return model.Reminder{
		Title: title,
		Date:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestGateLoadCreatesGuest(t *testing.T) {
	g, _ := newTestGate(t)

	acct := g.Account()
	assert.True(t, acct.IsTemp)
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, model.GuestCapacity, acct.Capacity())
}

func TestGateLoadRestoresAccount(t *testing.T) {
	kv := testutil.NewTestKV(t)

	entries := store.NewReminders(kv)
	require.NoError(t, entries.Load())

	g := NewGate(kv, entries, zap.NewNop())
	require.NoError(t, g.Load())
	require.NoError(t, g.Login("ada"))

	g2 := NewGate(kv, entries, zap.NewNop())
	require.NoError(t, g2.Load())
	assert.Equal(t, g.Account().ID, g2.Account().ID)
	assert.Equal(t, "ada", g2.Account().Name)
	assert.False(t, g2.Account().IsTemp)
}

func TestGateGuestFirstEntryCreated(t *testing.T) {
	g, entries := newTestGate(t)

	res, created, err := g.SubmitNew(sampleEntry("first"))
	require.NoError(t, err)
	assert.Equal(t, SubmitCreated, res)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, g.Account().ID, created.UserID)
	assert.Equal(t, 1, entries.Count())
}

func TestGateGuestSecondEntryPendsReplace(t *testing.T) {
	g, entries := newTestGate(t)

	_, _, err := g.SubmitNew(sampleEntry("first"))
	require.NoError(t, err)

	res, _, err := g.SubmitNew(sampleEntry("second"))
	require.NoError(t, err)
	assert.Equal(t, SubmitPendingReplace, res)
	assert.Equal(t, 1, entries.Count(), "store untouched until confirmation")

	held, ok := g.Pending()
	require.True(t, ok)
	assert.Equal(t, "second", held.Title)
}

func TestGateConfirmReplace(t *testing.T) {
	g, entries := newTestGate(t)

	_, first, err := g.SubmitNew(sampleEntry("first"))
	require.NoError(t, err)
	_, _, err = g.SubmitNew(sampleEntry("second"))
	require.NoError(t, err)

	created, err := g.ConfirmReplace()
	require.NoError(t, err)
	assert.Equal(t, "second", created.Title)
	assert.Equal(t, 1, entries.Count())

	_, ok := entries.Get(first.ID)
	assert.False(t, ok, "old entry should be gone")
	_, ok = g.Pending()
	assert.False(t, ok)
}

func TestGateCancelReplaceKeepsExisting(t *testing.T) {
	g, entries := newTestGate(t)

	_, first, err := g.SubmitNew(sampleEntry("first"))
	require.NoError(t, err)
	_, _, err = g.SubmitNew(sampleEntry("second"))
	require.NoError(t, err)

	g.CancelReplace()
	_, ok := g.Pending()
	assert.False(t, ok)
	assert.Equal(t, 1, entries.Count())
	_, ok = entries.Get(first.ID)
	assert.True(t, ok)
}

func TestGateNamedAccountRejectsAtCapacity(t *testing.T) {
	g, entries := newTestGate(t)
	require.NoError(t, g.Login("ada"))

	for i := 0; i < model.NamedCapacity; i++ {
		res, _, err := g.SubmitNew(sampleEntry("entry"))
		require.NoError(t, err)
		require.Equal(t, SubmitCreated, res)
	}

	res, _, err := g.SubmitNew(sampleEntry("one too many"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, SubmitRejected, res)
	assert.Equal(t, model.NamedCapacity, entries.Count())
}

func TestGateEditBypassesCapacity(t *testing.T) {
	g, entries := newTestGate(t)

	_, created, err := g.SubmitNew(sampleEntry("first"))
	require.NoError(t, err)

	edit := created
	edit.Title = "renamed"
	require.NoError(t, g.SubmitEdit(created.ID, edit))

	got, ok := entries.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, 1, entries.Count())
}

func TestGateSubmitNewRejectsInvalidEntry(t *testing.T) {
	g, entries := newTestGate(t)

	res, _, err := g.SubmitNew(model.Reminder{Title: "   ", Date: time.Now()})
	assert.Error(t, err)
	assert.Equal(t, SubmitRejected, res)
	assert.Equal(t, 0, entries.Count())
	_, pending := g.Pending()
	assert.False(t, pending, "invalid entry must not reach the replace flow")
}

func TestGateSubmitEditRejectsInvalidEntry(t *testing.T) {
	g, entries := newTestGate(t)

	_, created, err := g.SubmitNew(sampleEntry("keep me"))
	require.NoError(t, err)

	edit := created
	edit.Title = ""
	assert.Error(t, g.SubmitEdit(created.ID, edit))

	got, ok := entries.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "keep me", got.Title, "store untouched by invalid edit")
}

func TestGateLoginMigratesEntries(t *testing.T) {
	g, entries := newTestGate(t)

	_, created, err := g.SubmitNew(sampleEntry("carried over"))
	require.NoError(t, err)

	require.NoError(t, g.Login("ada"))
	assert.False(t, g.Account().IsTemp)
	assert.Equal(t, "ada", g.Account().Name)
	assert.Equal(t, model.NamedCapacity, g.Account().Capacity())

	got, ok := entries.Get(created.ID)
	require.True(t, ok, "entries survive login")
	assert.Equal(t, MigratedOwnerMarker, got.UserID)
}

func TestGateLogoutClearsEntries(t *testing.T) {
	g, entries := newTestGate(t)
	require.NoError(t, g.Login("ada"))

	_, _, err := g.SubmitNew(sampleEntry("doomed"))
	require.NoError(t, err)

	prevID := g.Account().ID
	require.NoError(t, g.Logout())

	assert.True(t, g.Account().IsTemp)
	assert.NotEqual(t, prevID, g.Account().ID)
	assert.Equal(t, 0, entries.Count())
}
