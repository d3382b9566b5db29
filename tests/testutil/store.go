package testutil

import (
	"testing"

	"github.com/hqvu/remindcal/internal/store"
)

// NewTestKV creates an in-memory SQLite KV with all migrations applied.
// It automatically closes the backend when the test completes.
func NewTestKV(t *testing.T) *store.SQLiteKV {
	t.Helper()

	kv, err := store.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("creating test kv: %v", err)
	}

	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("closing test kv: %v", err)
		}
	})

	return kv
}
