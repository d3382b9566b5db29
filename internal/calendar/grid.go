// Package calendar computes the padded day grids behind the month and week
// views, and buckets reminders onto calendar days. All arithmetic is plain
// calendar math in the timestamp's own location; no timezone conversion
// happens anywhere in this package.
package calendar

import (
	"sort"
	"time"

	"github.com/hqvu/remindcal/internal/model"
)

// Clock supplies the current time. Injectable so that "today" detection and
// anchor resets are testable.
type Clock func() time.Time

// DayOf truncates a timestamp to midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// weekStart returns midnight of the Sunday on or before t.
func weekStart(t time.Time) time.Time {
	d := DayOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// ComputeGrid returns the ordered, gap-free day sequence for the given
// anchor and view mode.
//
// Month mode pads the anchor's month to whole Sunday-started weeks: the grid
// runs from the week start on or before the 1st through (exclusive) the week
// start on or after the 1st of the next month, so the length is always a
// multiple of 7. Week mode is exactly the 7 days of the anchor's week.
func ComputeGrid(anchor time.Time, mode model.ViewMode) []time.Time {
	var start, end time.Time

	switch mode {
	case model.ViewWeek:
		start = weekStart(anchor)
		end = start.AddDate(0, 0, 7)
	default:
		monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		monthEnd := monthStart.AddDate(0, 1, 0)
		start = weekStart(monthStart)
		end = weekStart(monthEnd)
		if end.Before(monthEnd) {
			end = end.AddDate(0, 0, 7)
		}
	}

	days := make([]time.Time, 0, 42)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsCurrentMonth reports whether day belongs to the anchor's displayed month.
// Used to dim padding days in month mode.
func IsCurrentMonth(day, anchor time.Time) bool {
	return day.Year() == anchor.Year() && day.Month() == anchor.Month()
}

// IsToday reports whether day is the current calendar date per now.
func IsToday(day, now time.Time) bool {
	return SameDay(day, now)
}

// BucketByDay returns the reminders whose stored timestamp falls on the
// given calendar day, regardless of time-of-day.
func BucketByDay(reminders []model.Reminder, day time.Time) []model.Reminder {
	var out []model.Reminder
	for _, r := range reminders {
		if SameDay(r.Date, day) {
			out = append(out, r)
		}
	}
	return out
}

// Cells derives the full renderable grid for the anchor, mode, and entry
// set, with per-cell bucketing and today detection.
func Cells(anchor time.Time, mode model.ViewMode, reminders []model.Reminder, now time.Time) []model.CalendarCell {
	days := ComputeGrid(anchor, mode)
	cells := make([]model.CalendarCell, len(days))
	for i, day := range days {
		cells[i] = model.CalendarCell{
			Date:      day,
			InPeriod:  mode == model.ViewWeek || IsCurrentMonth(day, anchor),
			IsToday:   IsToday(day, now),
			Reminders: BucketByDay(reminders, day),
		}
	}
	return cells
}

// OffsetAnchor moves the anchor one full period in the given direction
// (-1 previous, +1 next). Month steps use calendar arithmetic, so month-end
// overflow is handled by the time package, not fixed-day increments.
func OffsetAnchor(anchor time.Time, mode model.ViewMode, direction int) time.Time {
	if mode == model.ViewWeek {
		return anchor.AddDate(0, 0, 7*direction)
	}
	return anchor.AddDate(0, direction, 0)
}

// ResetAnchor picks the anchor to jump to: the date of the chronologically
// nearest reminder at or after now, or now itself when none is upcoming.
// The view mode always resets to month alongside.
func ResetAnchor(reminders []model.Reminder, now time.Time) (time.Time, model.ViewMode) {
	var upcoming []model.Reminder
	for _, r := range reminders {
		if !r.Date.Before(now) {
			upcoming = append(upcoming, r)
		}
	}
	if len(upcoming) == 0 {
		return now, model.ViewMonth
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	return upcoming[0].Date, model.ViewMonth
}
