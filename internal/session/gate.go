// Package session owns the active account and enforces its reminder quota
// at the submit boundary.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/store"
)

// MigratedOwnerMarker stamps entries carried over from a guest session when
// the user logs in. Entries keep it permanently; it is a provenance tag, not
// a live account reference.
const MigratedOwnerMarker = "migrated-guest-entry"

// ErrCapacityExceeded is returned when a named account is already at its
// reminder cap and a new entry is submitted.
var ErrCapacityExceeded = errors.New("reminder capacity reached")

// SubmitResult says what the gate decided to do with a submitted entry.
type SubmitResult int

const (
	// SubmitCreated means the entry was stored.
	SubmitCreated SubmitResult = iota
	// SubmitRejected means a named account is at capacity; nothing changed.
	SubmitRejected
	// SubmitPendingReplace means a guest is at capacity; the entry is held
	// until the user confirms replacing the existing one or cancels.
	SubmitPendingReplace
)

// Gate mediates every reminder submission against the active account's
// capacity, and owns the login/logout transitions.
type Gate struct {
	kv      store.KV
	entries *store.Reminders
	logger  *zap.Logger

	account model.Account
	pending *model.Reminder
}

// NewGate creates a gate over the given KV backend and reminder collection.
func NewGate(kv store.KV, entries *store.Reminders, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{kv: kv, entries: entries, logger: logger}
}

// Load restores the persisted account, creating a fresh guest identity on
// first run.
func (g *Gate) Load() error {
	data, ok, err := g.kv.Load(store.KeyUser)
	if err != nil {
		return fmt.Errorf("loading account: %w", err)
	}
	if ok && len(data) > 0 {
		if err := json.Unmarshal(data, &g.account); err != nil {
			return fmt.Errorf("decoding account: %w", err)
		}
		return nil
	}

	g.account = newGuest()
	g.logger.Info("created guest account", zap.String("id", g.account.ID))
	return g.saveAccount()
}

func (g *Gate) saveAccount() error {
	data, err := json.Marshal(g.account)
	if err != nil {
		return fmt.Errorf("encoding account: %w", err)
	}
	if err := g.kv.Save(store.KeyUser, data); err != nil {
		return fmt.Errorf("persisting account: %w", err)
	}
	return nil
}

func newGuest() model.Account {
	return model.Account{ID: uuid.New().String(), IsTemp: true}
}

// Account returns the active account.
func (g *Gate) Account() model.Account { return g.account }

// Pending returns the entry held for the replace-confirmation prompt.
func (g *Gate) Pending() (model.Reminder, bool) {
	if g.pending == nil {
		return model.Reminder{}, false
	}
	return *g.pending, true
}

// SubmitNew runs a new entry through validation and the capacity check.
// Under capacity it is stored immediately. At capacity, a guest gets a
// pending-replace prompt and a named account gets a rejection with
// ErrCapacityExceeded.
func (g *Gate) SubmitNew(data model.Reminder) (SubmitResult, model.Reminder, error) {
	data.Normalize()
	if err := data.Validate(); err != nil {
		return SubmitRejected, model.Reminder{}, fmt.Errorf("invalid reminder: %w", err)
	}

	limit := g.account.Capacity()
	count := g.entries.Count()

	if count < limit {
		created, err := g.entries.Create(data, g.account.ID)
		if err != nil {
			return SubmitRejected, model.Reminder{}, err
		}
		return SubmitCreated, created, nil
	}

	if g.account.IsTemp {
		held := data
		g.pending = &held
		g.logger.Info("guest at capacity, holding entry for replace prompt",
			zap.Int("count", count))
		return SubmitPendingReplace, model.Reminder{}, nil
	}

	g.logger.Warn("submission rejected at capacity",
		zap.Int("count", count), zap.Int("capacity", limit))
	return SubmitRejected, model.Reminder{}, ErrCapacityExceeded
}

// ConfirmReplace discards the guest's existing entries and stores the held
// one. No-op when nothing is pending.
func (g *Gate) ConfirmReplace() (model.Reminder, error) {
	if g.pending == nil {
		return model.Reminder{}, nil
	}
	if err := g.entries.Clear(); err != nil {
		return model.Reminder{}, err
	}
	created, err := g.entries.Create(*g.pending, g.account.ID)
	g.pending = nil
	if err != nil {
		return model.Reminder{}, err
	}
	g.logger.Info("guest entry replaced")
	return created, nil
}

// CancelReplace drops the held entry without touching the store.
func (g *Gate) CancelReplace() {
	g.pending = nil
}

// SubmitEdit applies an edit to an existing entry. Edits never change the
// entry count, so no capacity check applies; the data is still validated.
func (g *Gate) SubmitEdit(id string, data model.Reminder) error {
	data.Normalize()
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid reminder: %w", err)
	}
	return g.entries.Update(id, data)
}

// Login switches to a named account. Existing entries survive the switch and
// are stamped with the migration marker so their guest origin stays visible.
func (g *Gate) Login(name string) error {
	g.account = model.Account{ID: uuid.New().String(), Name: name}
	g.pending = nil
	if err := g.saveAccount(); err != nil {
		return err
	}
	if err := g.entries.StampOwners(MigratedOwnerMarker); err != nil {
		return err
	}
	g.logger.Info("logged in",
		zap.String("name", name), zap.Int("migrated", g.entries.Count()))
	return nil
}

// Logout returns to a fresh guest identity and wipes all entries.
func (g *Gate) Logout() error {
	g.account = newGuest()
	g.pending = nil
	if err := g.saveAccount(); err != nil {
		return err
	}
	if err := g.entries.Clear(); err != nil {
		return err
	}
	g.logger.Info("logged out, entries cleared")
	return nil
}
