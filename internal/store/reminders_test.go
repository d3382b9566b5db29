package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqvu/remindcal/internal/model"
)

func newTestReminders(t *testing.T) *Reminders {
	t.Helper()
	kv, err := NewSQLiteKV(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	s := NewReminders(kv)
	require.NoError(t, s.Load())
	return s
}

func TestRemindersCreateAssignsIdentity(t *testing.T) {
	s := newTestReminders(t)

	r, err := s.Create(model.Reminder{
		Title: "Dentist",
		Date:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}, "owner-1")
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "owner-1", r.UserID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, model.TypeStandard, r.Type, "normalize should fill enum defaults")
	assert.Equal(t, 1, s.Count())
}

func TestRemindersLoadRoundTrip(t *testing.T) {
	kv, err := NewSQLiteKV(":memory:")
	require.NoError(t, err)
	defer kv.Close()

	s := NewReminders(kv)
	require.NoError(t, s.Load())

	created, err := s.Create(model.Reminder{
		Title: "Water plants",
		Date:  time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
	}, "owner-1")
	require.NoError(t, err)

	// Fresh collection over the same KV sees the persisted entry.
	s2 := NewReminders(kv)
	require.NoError(t, s2.Load())
	require.Equal(t, 1, s2.Count())

	got, ok := s2.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Water plants", got.Title)
}

func TestRemindersUpdateMergesFields(t *testing.T) {
	s := newTestReminders(t)

	created, err := s.Create(model.Reminder{
		Title: "Standup",
		Date:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}, "owner-1")
	require.NoError(t, err)

	edit := created
	edit.Title = "Standup (moved)"
	edit.Date = time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.Update(created.ID, edit))

	got, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Standup (moved)", got.Title)
	assert.Equal(t, edit.Date, got.Date)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.UserID, got.UserID)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestRemindersStaleIDsAreNoOps(t *testing.T) {
	s := newTestReminders(t)

	_, err := s.Create(model.Reminder{
		Title: "Only entry",
		Date:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}, "owner-1")
	require.NoError(t, err)

	assert.NoError(t, s.Update("gone", model.Reminder{Title: "x"}))
	assert.NoError(t, s.Delete("gone"))
	assert.NoError(t, s.ToggleCompleted("gone"))
	assert.Equal(t, 1, s.Count())
}

func TestRemindersToggleCompleted(t *testing.T) {
	s := newTestReminders(t)

	created, err := s.Create(model.Reminder{
		Title: "Gym",
		Date:  time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
	}, "owner-1")
	require.NoError(t, err)

	require.NoError(t, s.ToggleCompleted(created.ID))
	got, _ := s.Get(created.ID)
	assert.True(t, got.Completed)

	require.NoError(t, s.ToggleCompleted(created.ID))
	got, _ = s.Get(created.ID)
	assert.False(t, got.Completed)
}

func TestRemindersDelete(t *testing.T) {
	s := newTestReminders(t)

	a, err := s.Create(model.Reminder{Title: "a", Date: time.Now()}, "o")
	require.NoError(t, err)
	b, err := s.Create(model.Reminder{Title: "b", Date: time.Now()}, "o")
	require.NoError(t, err)

	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, 1, s.Count())
	_, ok := s.Get(a.ID)
	assert.False(t, ok)
	_, ok = s.Get(b.ID)
	assert.True(t, ok)
}

func TestRemindersFilter(t *testing.T) {
	s := newTestReminders(t)

	later := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := s.Create(model.Reminder{Title: "Team MEETING", Date: later}, "o")
	require.NoError(t, err)
	_, err = s.Create(model.Reminder{Title: "Lunch", Description: "meeting with Ann", Date: earlier}, "o")
	require.NoError(t, err)
	_, err = s.Create(model.Reminder{Title: "Dentist", Date: earlier}, "o")
	require.NoError(t, err)

	got := s.Filter("meeting")
	require.Len(t, got, 2)
	// Sorted ascending by date, matching title or description.
	assert.Equal(t, "Lunch", got[0].Title)
	assert.Equal(t, "Team MEETING", got[1].Title)

	assert.Len(t, s.Filter(""), 3)
	assert.Empty(t, s.Filter("no such thing"))
}

func TestRemindersClearAndStampOwners(t *testing.T) {
	s := newTestReminders(t)

	_, err := s.Create(model.Reminder{Title: "a", Date: time.Now()}, "guest-1")
	require.NoError(t, err)
	_, err = s.Create(model.Reminder{Title: "b", Date: time.Now()}, "guest-1")
	require.NoError(t, err)

	require.NoError(t, s.StampOwners("migrated-guest-entry"))
	for _, r := range s.All() {
		assert.Equal(t, "migrated-guest-entry", r.UserID)
	}

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Count())

	// The empty state persists too.
	s2 := NewReminders(s.kv)
	require.NoError(t, s2.Load())
	assert.Equal(t, 0, s2.Count())
}
