// Package store persists the application's two durable records (the user
// account and the reminder collection) as serialized JSON in a string-keyed
// key-value store, and keeps the working reminder set in memory.
package store

// Record keys used by the application.
const (
	KeyUser      = "user"
	KeyReminders = "reminders"
)

// KV is the minimal durable key-value contract. Records are loaded once at
// startup and written back on every state change.
type KV interface {
	// Load returns the blob stored under key, with ok=false when absent.
	Load(key string) (data []byte, ok bool, err error)

	// Save writes the blob under key, replacing any previous value.
	Save(key string, data []byte) error

	Close() error
}
