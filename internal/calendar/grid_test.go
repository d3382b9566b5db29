package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqvu/remindcal/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestComputeGridMarch2024(t *testing.T) {
	// 2024-03-01 is a Friday, so the grid is padded back to Sunday Feb 25.
	// March 31 is itself a Sunday, which forces a sixth week.
	days := ComputeGrid(date(2024, time.March, 1), model.ViewMonth)

	require.Len(t, days, 42)
	assert.True(t, SameDay(days[0], date(2024, time.February, 25)))
	assert.Equal(t, time.Sunday, days[0].Weekday())
	assert.True(t, SameDay(days[len(days)-1], date(2024, time.April, 6)))
}

func TestComputeGridApril2024(t *testing.T) {
	// April 2024 spans exactly five Sunday-started weeks: Mar 31 .. May 4.
	days := ComputeGrid(date(2024, time.April, 15), model.ViewMonth)

	require.Len(t, days, 35)
	assert.True(t, SameDay(days[0], date(2024, time.March, 31)))
	assert.True(t, SameDay(days[len(days)-1], date(2024, time.May, 4)))
}

func TestComputeGridMonthProperties(t *testing.T) {
	anchors := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 29),
		date(2024, time.June, 1),
		date(2024, time.December, 31),
		date(2025, time.March, 30),
		date(2023, time.October, 1), // Oct 2023 starts on a Sunday
	}

	for _, anchor := range anchors {
		days := ComputeGrid(anchor, model.ViewMonth)

		assert.Zero(t, len(days)%7, "anchor %v: length %d not a multiple of 7", anchor, len(days))
		assert.Equal(t, time.Sunday, days[0].Weekday(), "anchor %v", anchor)

		// Contiguous, gap-free run.
		for i := 1; i < len(days); i++ {
			assert.True(t, SameDay(days[i], days[i-1].AddDate(0, 0, 1)),
				"anchor %v: gap at index %d", anchor, i)
		}

		// Every day of the anchor's month is present.
		monthStart := date(anchor.Year(), anchor.Month(), 1)
		for d := monthStart; d.Month() == anchor.Month(); d = d.AddDate(0, 0, 1) {
			found := false
			for _, day := range days {
				if SameDay(day, d) {
					found = true
					break
				}
			}
			assert.True(t, found, "anchor %v: missing day %v", anchor, d)
		}
	}
}

func TestComputeGridWeek(t *testing.T) {
	// 2024-03-01 is a Friday; its week starts Sunday 2024-02-25.
	days := ComputeGrid(date(2024, time.March, 1), model.ViewWeek)

	require.Len(t, days, 7)
	assert.True(t, SameDay(days[0], date(2024, time.February, 25)))
	for i := 1; i < 7; i++ {
		assert.True(t, SameDay(days[i], days[0].AddDate(0, 0, i)))
	}
}

func TestComputeGridWeekAnchoredOnSunday(t *testing.T) {
	days := ComputeGrid(date(2024, time.March, 3), model.ViewWeek) // a Sunday

	require.Len(t, days, 7)
	assert.True(t, SameDay(days[0], date(2024, time.March, 3)))
}

func TestBucketByDayIgnoresTimeOfDay(t *testing.T) {
	late := model.Reminder{
		ID:   "late",
		Date: time.Date(2024, 3, 15, 23, 30, 0, 0, time.Local),
	}
	early := model.Reminder{
		ID:   "early",
		Date: time.Date(2024, 3, 16, 0, 15, 0, 0, time.Local),
	}

	on15 := BucketByDay([]model.Reminder{late, early}, date(2024, time.March, 15))
	require.Len(t, on15, 1)
	assert.Equal(t, "late", on15[0].ID)

	on16 := BucketByDay([]model.Reminder{late, early}, date(2024, time.March, 16))
	require.Len(t, on16, 1)
	assert.Equal(t, "early", on16[0].ID)
}

func TestCells(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)
	entries := []model.Reminder{
		{ID: "a", Date: time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)},
		{ID: "b", Date: time.Date(2024, 2, 28, 9, 0, 0, 0, time.Local)},
	}

	cells := Cells(date(2024, time.March, 1), model.ViewMonth, entries, now)
	require.Len(t, cells, 35)

	var todayCount int
	for _, c := range cells {
		if c.IsToday {
			todayCount++
			require.Len(t, c.Reminders, 1)
			assert.Equal(t, "a", c.Reminders[0].ID)
			assert.True(t, c.InPeriod)
		}
		if SameDay(c.Date, date(2024, time.February, 28)) {
			require.Len(t, c.Reminders, 1)
			assert.Equal(t, "b", c.Reminders[0].ID)
			assert.False(t, c.InPeriod, "February padding day should be out of period")
		}
	}
	assert.Equal(t, 1, todayCount)
}

func TestOffsetAnchor(t *testing.T) {
	assert.True(t, SameDay(
		OffsetAnchor(date(2024, time.March, 15), model.ViewMonth, 1),
		date(2024, time.April, 15),
	))
	assert.True(t, SameDay(
		OffsetAnchor(date(2024, time.March, 15), model.ViewMonth, -1),
		date(2024, time.February, 15),
	))
	// Month-end overflow is calendar arithmetic, Jan 31 -> Mar 2 per AddDate.
	assert.True(t, SameDay(
		OffsetAnchor(date(2024, time.January, 31), model.ViewMonth, 1),
		date(2024, time.January, 31).AddDate(0, 1, 0),
	))
	assert.True(t, SameDay(
		OffsetAnchor(date(2024, time.March, 15), model.ViewWeek, 1),
		date(2024, time.March, 22),
	))
	assert.True(t, SameDay(
		OffsetAnchor(date(2024, time.March, 15), model.ViewWeek, -1),
		date(2024, time.March, 8),
	))
}

func TestResetAnchorPicksNearestUpcoming(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	entries := []model.Reminder{
		{ID: "past", Date: now.AddDate(0, 0, -3)},
		{ID: "far", Date: now.AddDate(0, 2, 0)},
		{ID: "near", Date: now.AddDate(0, 0, 5)},
	}

	anchor, mode := ResetAnchor(entries, now)
	assert.True(t, SameDay(anchor, now.AddDate(0, 0, 5)))
	assert.Equal(t, model.ViewMonth, mode)
}

func TestResetAnchorFallsBackToNow(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	entries := []model.Reminder{
		{ID: "past", Date: now.AddDate(0, 0, -3)},
	}

	anchor, mode := ResetAnchor(entries, now)
	assert.True(t, SameDay(anchor, now))
	assert.Equal(t, model.ViewMonth, mode)

	anchor, _ = ResetAnchor(nil, now)
	assert.True(t, SameDay(anchor, now))
}
