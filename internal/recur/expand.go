// Package recur expands a recurring reminder into its concrete occurrence
// dates within a bounded window. Reminders stay single stored records;
// expansion only feeds views.
package recur

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/hqvu/remindcal/internal/model"
)

const defaultMaxOccurrences = 5000

// Window is the inclusive time range occurrences are expanded into.
type Window struct {
	Start time.Time
	End   time.Time

	// MaxOccurrences is a safety cap against runaway expansion.
	// Zero means defaultMaxOccurrences.
	MaxOccurrences int
}

// Result carries the expanded occurrence times and whether the cap was hit.
type Result struct {
	Occurrences []time.Time
	Truncated   bool
}

var freqs = map[model.Recurrence]rrule.Frequency{
	model.RecurrenceDaily:   rrule.DAILY,
	model.RecurrenceWeekly:  rrule.WEEKLY,
	model.RecurrenceMonthly: rrule.MONTHLY,
	model.RecurrenceYearly:  rrule.YEARLY,
}

// Expand enumerates the occurrences of a reminder inside the window,
// honoring its end condition (never / end date / occurrence count).
// A non-recurring reminder yields its own date when it falls in the window.
func Expand(r model.Reminder, w Window) (Result, error) {
	var res Result

	if w.End.Before(w.Start) {
		return res, fmt.Errorf("expand: window end is before window start")
	}
	if w.MaxOccurrences <= 0 {
		w.MaxOccurrences = defaultMaxOccurrences
	}

	if r.Recurrence == model.RecurrenceNone {
		if !r.Date.Before(w.Start) && !r.Date.After(w.End) {
			res.Occurrences = []time.Time{r.Date}
		}
		return res, nil
	}

	freq, ok := freqs[r.Recurrence]
	if !ok {
		return res, fmt.Errorf("expand: unknown recurrence %q", r.Recurrence)
	}

	opt := rrule.ROption{
		Freq:    freq,
		Dtstart: r.Date,
	}

	switch r.RecurrenceEndMode {
	case model.EndDate:
		if r.RecurrenceEndValue == nil || r.RecurrenceEndValue.Date.IsZero() {
			return res, fmt.Errorf("expand: end mode %q without an end date", model.EndDate)
		}
		end := r.RecurrenceEndValue.Date
		if end.Before(r.Date) {
			return res, fmt.Errorf("expand: end date is before the reminder date")
		}
		// UNTIL is inclusive of the whole end day.
		opt.Until = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, r.Date.Location())
	case model.EndCount:
		if r.RecurrenceEndValue == nil || r.RecurrenceEndValue.Count < 1 {
			return res, fmt.Errorf("expand: end mode %q without a positive count", model.EndCount)
		}
		opt.Count = r.RecurrenceEndValue.Count
	case model.EndNever, "":
		// Bounded only by the requested window.
	default:
		return res, fmt.Errorf("expand: unknown end mode %q", r.RecurrenceEndMode)
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return res, fmt.Errorf("expand: building rule: %w", err)
	}

	occ := rule.Between(w.Start, w.End, true)
	if len(occ) > w.MaxOccurrences {
		occ = occ[:w.MaxOccurrences]
		res.Truncated = true
	}
	res.Occurrences = occ
	return res, nil
}
