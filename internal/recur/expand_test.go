package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqvu/remindcal/internal/model"
)

func weekly(start time.Time) model.Reminder {
	return model.Reminder{
		ID:         "r1",
		Title:      "standup",
		Date:       start,
		Recurrence: model.RecurrenceWeekly,
	}
}

func TestExpandNonRecurring(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	r := model.Reminder{ID: "x", Date: start, Recurrence: model.RecurrenceNone}

	res, err := Expand(r, Window{Start: start.AddDate(0, 0, -7), End: start.AddDate(0, 0, 7)})
	require.NoError(t, err)
	require.Len(t, res.Occurrences, 1)
	assert.True(t, res.Occurrences[0].Equal(start))

	res, err = Expand(r, Window{Start: start.AddDate(0, 1, 0), End: start.AddDate(0, 2, 0)})
	require.NoError(t, err)
	assert.Empty(t, res.Occurrences)
}

func TestExpandWeeklyNeverWithinWindow(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC) // Monday
	r := weekly(start)
	r.RecurrenceEndMode = model.EndNever

	res, err := Expand(r, Window{Start: start, End: start.AddDate(0, 0, 28)})
	require.NoError(t, err)
	require.Len(t, res.Occurrences, 5) // inclusive window: weeks 0..4
	for i, occ := range res.Occurrences {
		assert.True(t, occ.Equal(start.AddDate(0, 0, 7*i)), "occurrence %d", i)
	}
}

func TestExpandCountBound(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	r := weekly(start)
	r.RecurrenceEndMode = model.EndCount
	r.RecurrenceEndValue = model.NewEndCount(3)

	res, err := Expand(r, Window{Start: start, End: start.AddDate(1, 0, 0)})
	require.NoError(t, err)
	assert.Len(t, res.Occurrences, 3)
}

func TestExpandEndDateBound(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	r := weekly(start)
	r.RecurrenceEndMode = model.EndDate
	// End date lands exactly on the third occurrence's day; UNTIL covers
	// the whole end day, so that occurrence is included.
	r.RecurrenceEndValue = model.NewEndDate(start.AddDate(0, 0, 14))

	res, err := Expand(r, Window{Start: start, End: start.AddDate(1, 0, 0)})
	require.NoError(t, err)
	assert.Len(t, res.Occurrences, 3)
}

func TestExpandDailyMonthly(t *testing.T) {
	start := time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC)

	daily := model.Reminder{Date: start, Recurrence: model.RecurrenceDaily}
	res, err := Expand(daily, Window{Start: start, End: start.AddDate(0, 0, 9)})
	require.NoError(t, err)
	assert.Len(t, res.Occurrences, 10)

	monthly := model.Reminder{Date: start, Recurrence: model.RecurrenceMonthly}
	res, err = Expand(monthly, Window{Start: start, End: start.AddDate(1, 0, 0)})
	require.NoError(t, err)
	// The 31st only exists in seven of the following twelve months.
	for _, occ := range res.Occurrences {
		assert.Equal(t, 31, occ.Day())
	}
}

func TestExpandRejectsInvalidEndCondition(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	r := weekly(start)
	r.RecurrenceEndMode = model.EndCount
	_, err := Expand(r, Window{Start: start, End: start.AddDate(0, 1, 0)})
	assert.Error(t, err)

	r.RecurrenceEndValue = model.NewEndCount(0)
	_, err = Expand(r, Window{Start: start, End: start.AddDate(0, 1, 0)})
	assert.Error(t, err)

	r.RecurrenceEndMode = model.EndDate
	r.RecurrenceEndValue = model.NewEndDate(start.AddDate(0, 0, -1))
	_, err = Expand(r, Window{Start: start, End: start.AddDate(0, 1, 0)})
	assert.Error(t, err)
}

func TestExpandHonorsCap(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := model.Reminder{Date: start, Recurrence: model.RecurrenceDaily}

	res, err := Expand(r, Window{Start: start, End: start.AddDate(1, 0, 0), MaxOccurrences: 10})
	require.NoError(t, err)
	assert.Len(t, res.Occurrences, 10)
	assert.True(t, res.Truncated)
}

func TestExpandRejectsInvertedWindow(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	_, err := Expand(weekly(start), Window{Start: start, End: start.AddDate(0, 0, -1)})
	assert.Error(t, err)
}
