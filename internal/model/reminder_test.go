package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReminder() Reminder {
	return Reminder{
		ID:         "r1",
		UserID:     "u1",
		Title:      "Dentist",
		Date:       time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local),
		Type:       TypeHealth,
		Recurrence: RecurrenceNone,
		Method:     MethodNotification,
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	r := Reminder{Title: "x", Date: time.Now()}
	r.Normalize()

	assert.Equal(t, TypeStandard, r.Type)
	assert.Equal(t, RecurrenceNone, r.Recurrence)
	assert.Equal(t, MethodNotification, r.Method)
}

func TestNormalizeClearsEndConditionWhenNotRecurring(t *testing.T) {
	r := validReminder()
	r.Recurrence = RecurrenceNone
	r.RecurrenceEndMode = EndCount
	r.RecurrenceEndValue = NewEndCount(5)
	r.Normalize()

	assert.Empty(t, r.RecurrenceEndMode)
	assert.Nil(t, r.RecurrenceEndValue)
}

func TestNormalizeClearsContactForNotificationMethod(t *testing.T) {
	r := validReminder()
	r.Method = MethodNotification
	r.ContactInfo = "me@example.com"
	r.Normalize()

	assert.Empty(t, r.ContactInfo)
}

func TestNormalizeDefaultsEndModeForRecurring(t *testing.T) {
	r := validReminder()
	r.Recurrence = RecurrenceWeekly
	r.Normalize()

	assert.Equal(t, EndNever, r.RecurrenceEndMode)
	assert.Nil(t, r.RecurrenceEndValue)
}

func TestValidateRejectsEmptyTitle(t *testing.T) {
	r := validReminder()
	r.Title = "   "
	assert.Error(t, r.Validate())
}

func TestValidateEndConditionRules(t *testing.T) {
	r := validReminder()
	r.Recurrence = RecurrenceWeekly

	r.RecurrenceEndMode = EndCount
	r.RecurrenceEndValue = nil
	assert.Error(t, r.Validate(), "count mode requires a value")

	r.RecurrenceEndValue = NewEndCount(0)
	assert.Error(t, r.Validate(), "count must be positive")

	r.RecurrenceEndValue = NewEndCount(5)
	assert.NoError(t, r.Validate())

	r.RecurrenceEndMode = EndDate
	r.RecurrenceEndValue = NewEndDate(r.Date.AddDate(0, 0, -1))
	assert.Error(t, r.Validate(), "end date before start")

	r.RecurrenceEndValue = NewEndDate(r.Date.AddDate(0, 1, 0))
	assert.NoError(t, r.Validate())

	r.RecurrenceEndMode = EndNever
	r.RecurrenceEndValue = NewEndCount(3)
	assert.Error(t, r.Validate(), "never mode must not carry a value")
}

func TestValidateContactInfoForbiddenForNotification(t *testing.T) {
	r := validReminder()
	r.ContactInfo = "+84 555 0101"
	assert.Error(t, r.Validate())

	r.Method = MethodSMS
	assert.NoError(t, r.Validate())
}

func TestEndValueJSONCount(t *testing.T) {
	r := validReminder()
	r.Recurrence = RecurrenceWeekly
	r.RecurrenceEndMode = EndCount
	r.RecurrenceEndValue = NewEndCount(5)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recurrenceEndMode":"count"`)
	assert.Contains(t, string(data), `"recurrenceEndValue":5`)

	var back Reminder
	require.NoError(t, json.Unmarshal(data, &back))
	require.NotNil(t, back.RecurrenceEndValue)
	assert.Equal(t, 5, back.RecurrenceEndValue.Count)
}

func TestEndValueJSONDate(t *testing.T) {
	r := validReminder()
	r.Recurrence = RecurrenceMonthly
	r.RecurrenceEndMode = EndDate
	r.RecurrenceEndValue = NewEndDate(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recurrenceEndValue":"2025-01-31"`)

	var back Reminder
	require.NoError(t, json.Unmarshal(data, &back))
	require.NotNil(t, back.RecurrenceEndValue)
	assert.Equal(t, 2025, back.RecurrenceEndValue.Date.Year())
	assert.Equal(t, time.January, back.RecurrenceEndValue.Date.Month())
}

func TestNonRecurringOmitsEndFieldsInJSON(t *testing.T) {
	r := validReminder()
	r.Normalize()

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "recurrenceEndMode")
	assert.NotContains(t, string(data), "recurrenceEndValue")
	assert.NotContains(t, string(data), "contactInfo")
}
