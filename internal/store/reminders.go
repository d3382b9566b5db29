package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hqvu/remindcal/internal/model"
)

// Reminders is the in-memory ordered reminder collection, backed by the
// "reminders" KV record. All mutation happens on the UI goroutine, so no
// locking is needed; every mutation is written through to the KV.
//
// Capacity is deliberately not checked here: quota enforcement lives at the
// submit boundary (session.Gate), and Create is unconditional once called.
type Reminders struct {
	kv   KV
	list []model.Reminder
}

// NewReminders creates a reminder collection over the given KV backend.
func NewReminders(kv KV) *Reminders {
	return &Reminders{kv: kv}
}

// Load reads the persisted collection. A missing record means a fresh
// install and loads as empty.
func (s *Reminders) Load() error {
	data, ok, err := s.kv.Load(KeyReminders)
	if err != nil {
		return fmt.Errorf("loading reminders: %w", err)
	}
	if !ok || len(data) == 0 {
		s.list = nil
		return nil
	}
	var list []model.Reminder
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decoding reminders: %w", err)
	}
	s.list = list
	return nil
}

// flush writes the whole collection back to the KV record.
func (s *Reminders) flush() error {
	data, err := json.Marshal(s.list)
	if err != nil {
		return fmt.Errorf("encoding reminders: %w", err)
	}
	if err := s.kv.Save(KeyReminders, data); err != nil {
		return fmt.Errorf("persisting reminders: %w", err)
	}
	return nil
}

// Create assigns a fresh id and creation timestamp, appends the reminder,
// and persists. Title/enum validation is the caller's job via Validate.
func (s *Reminders) Create(data model.Reminder, ownerID string) (model.Reminder, error) {
	data.ID = uuid.New().String()
	data.UserID = ownerID
	data.CreatedAt = time.Now().UTC()
	data.Normalize()

	s.list = append(s.list, data)
	if err := s.flush(); err != nil {
		return model.Reminder{}, err
	}
	return data, nil
}

// Update merges the editable fields of data into the reminder matching id.
// A missing id is a silent no-op: edits can race with deletion, and a stale
// edit target is not an error.
func (s *Reminders) Update(id string, data model.Reminder) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}

	r := &s.list[i]
	r.Title = data.Title
	r.Description = data.Description
	r.Date = data.Date
	r.Type = data.Type
	r.Recurrence = data.Recurrence
	r.Method = data.Method
	r.Completed = data.Completed
	r.RecurrenceEndMode = data.RecurrenceEndMode
	r.RecurrenceEndValue = data.RecurrenceEndValue
	r.ContactInfo = data.ContactInfo
	r.Normalize()

	return s.flush()
}

// Delete removes the reminder matching id; no-op when absent.
func (s *Reminders) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.list = append(s.list[:i], s.list[i+1:]...)
	return s.flush()
}

// ToggleCompleted flips the completed flag; no-op when absent.
func (s *Reminders) ToggleCompleted(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.list[i].Completed = !s.list[i].Completed
	return s.flush()
}

// Get returns the reminder matching id.
func (s *Reminders) Get(id string) (model.Reminder, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Reminder{}, false
	}
	return s.list[i], true
}

// All returns a copy of the collection in insertion order.
func (s *Reminders) All() []model.Reminder {
	out := make([]model.Reminder, len(s.list))
	copy(out, s.list)
	return out
}

// Count returns the number of stored reminders.
func (s *Reminders) Count() int {
	return len(s.list)
}

// Filter returns the reminders whose title or description contains the
// query substring (case-insensitive), sorted ascending by date. An empty
// query matches everything.
func (s *Reminders) Filter(query string) []model.Reminder {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []model.Reminder
	for _, r := range s.list {
		if q == "" ||
			strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Clear removes every reminder and persists the empty collection.
func (s *Reminders) Clear() error {
	s.list = nil
	return s.flush()
}

// StampOwners overwrites every reminder's owner reference with the given
// marker and persists.
func (s *Reminders) StampOwners(marker string) error {
	for i := range s.list {
		s.list[i].UserID = marker
	}
	return s.flush()
}

func (s *Reminders) index(id string) int {
	for i, r := range s.list {
		if r.ID == id {
			return i
		}
	}
	return -1
}
