package model

import "time"

// ViewMode selects the calendar granularity.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
)

// CalendarCell is one rendered day of the grid. It is derived state and is
// never persisted.
type CalendarCell struct {
	// Date is midnight of the cell's calendar day.
	Date time.Time

	// InPeriod is false for padding days outside the anchor's month.
	// Always true in week mode.
	InPeriod bool

	// IsToday marks the current wall-clock date.
	IsToday bool

	// Reminders holds the entries whose date falls on this calendar day.
	Reminders []Reminder
}
