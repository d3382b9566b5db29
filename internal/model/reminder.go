package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ReminderType categorizes a reminder for display and filtering.
type ReminderType string

const (
	TypeStandard ReminderType = "standard"
	TypeUrgent   ReminderType = "urgent"
	TypeMeeting  ReminderType = "meeting"
	TypeHealth   ReminderType = "health"
	TypeIdea     ReminderType = "idea"
)

// Recurrence is the repeat frequency of a reminder.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Method is the notification channel stored with a reminder.
// It is descriptive metadata only; nothing is ever dispatched.
type Method string

const (
	MethodNotification Method = "notification"
	MethodEmail        Method = "email"
	MethodSMS          Method = "sms"
	MethodCall         Method = "call"
)

// EndMode says how a recurring reminder stops repeating.
type EndMode string

const (
	EndNever EndMode = "never"
	EndDate  EndMode = "date"
	EndCount EndMode = "count"
)

const endDateLayout = "2006-01-02"

// EndValue is the payload of a recurrence end condition: an end date when
// the mode is "date", an occurrence count when the mode is "count". It
// marshals as a JSON date string or number accordingly.
type EndValue struct {
	Date  time.Time
	Count int
}

// NewEndDate returns an EndValue holding an end date.
func NewEndDate(d time.Time) *EndValue { return &EndValue{Date: d} }

// NewEndCount returns an EndValue holding an occurrence count.
func NewEndCount(n int) *EndValue { return &EndValue{Count: n} }

// MarshalJSON emits the count as a number when set, otherwise the date
// as an ISO date string.
func (v EndValue) MarshalJSON() ([]byte, error) {
	if v.Count > 0 {
		return json.Marshal(v.Count)
	}
	return json.Marshal(v.Date.Format(endDateLayout))
}

// UnmarshalJSON accepts either a JSON number (occurrence count) or a date
// string in ISO date or RFC 3339 form.
func (v *EndValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = EndValue{Count: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("recurrence end value: %w", err)
	}
	t, err := time.Parse(endDateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("recurrence end value %q: %w", s, err)
		}
	}
	*v = EndValue{Date: t}
	return nil
}

// Reminder is a single dated entry created and managed by the user.
// Recurring reminders stay single records; occurrences are expanded at
// view time.
type Reminder struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
	Type        ReminderType `json:"type"`
	Recurrence  Recurrence   `json:"recurrence"`
	Method      Method       `json:"method"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"createdAt"`

	// RecurrenceEndMode and RecurrenceEndValue are present only when
	// Recurrence != none; the value is absent when the mode is "never".
	RecurrenceEndMode  EndMode   `json:"recurrenceEndMode,omitempty"`
	RecurrenceEndValue *EndValue `json:"recurrenceEndValue,omitempty"`

	// ContactInfo is present only when Method != notification.
	ContactInfo string `json:"contactInfo,omitempty"`
}

// Normalize fills enum defaults and clears conditional fields whose
// governing enum no longer allows them, so their presence always tracks
// the enum value exactly.
func (r *Reminder) Normalize() {
	if r.Type == "" {
		r.Type = TypeStandard
	}
	if r.Recurrence == "" {
		r.Recurrence = RecurrenceNone
	}
	if r.Method == "" {
		r.Method = MethodNotification
	}

	if r.Recurrence == RecurrenceNone {
		r.RecurrenceEndMode = ""
		r.RecurrenceEndValue = nil
	} else {
		if r.RecurrenceEndMode == "" {
			r.RecurrenceEndMode = EndNever
		}
		if r.RecurrenceEndMode == EndNever {
			r.RecurrenceEndValue = nil
		}
	}

	if r.Method == MethodNotification {
		r.ContactInfo = ""
	}
}

// Validate reports the first rule violated by the reminder, if any.
// Callers are expected to Normalize first.
func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("reminder title must not be empty")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("reminder date must be set")
	}

	switch r.Type {
	case TypeStandard, TypeUrgent, TypeMeeting, TypeHealth, TypeIdea:
	default:
		return fmt.Errorf("unknown reminder type %q", r.Type)
	}
	switch r.Method {
	case MethodNotification, MethodEmail, MethodSMS, MethodCall:
	default:
		return fmt.Errorf("unknown method %q", r.Method)
	}

	switch r.Recurrence {
	case RecurrenceNone:
		if r.RecurrenceEndMode != "" || r.RecurrenceEndValue != nil {
			return fmt.Errorf("non-recurring reminder must not carry an end condition")
		}
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		switch r.RecurrenceEndMode {
		case EndNever:
			if r.RecurrenceEndValue != nil {
				return fmt.Errorf("end mode %q must not carry a value", EndNever)
			}
		case EndDate:
			if r.RecurrenceEndValue == nil || r.RecurrenceEndValue.Date.IsZero() {
				return fmt.Errorf("end mode %q requires an end date", EndDate)
			}
			if r.RecurrenceEndValue.Date.Before(r.Date) {
				return fmt.Errorf("recurrence end date is before the reminder date")
			}
		case EndCount:
			if r.RecurrenceEndValue == nil || r.RecurrenceEndValue.Count < 1 {
				return fmt.Errorf("end mode %q requires a positive occurrence count", EndCount)
			}
		default:
			return fmt.Errorf("unknown recurrence end mode %q", r.RecurrenceEndMode)
		}
	default:
		return fmt.Errorf("unknown recurrence %q", r.Recurrence)
	}

	if r.Method == MethodNotification && r.ContactInfo != "" {
		return fmt.Errorf("contact info must be empty for %q method", MethodNotification)
	}

	return nil
}
