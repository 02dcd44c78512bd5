package testsupport

import (
	"context"
	"testing"

	"fourtrack/internal/config"
	"fourtrack/internal/session"
	"fourtrack/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewSession creates a session with default meter for tests.
func NewSession(t testing.TB, st *store.Store, name string) (int64, *session.Session) {
	t.Helper()

	id, sess, err := st.CreateSession(context.Background(), name, 120, 4, 4)
	if err != nil {
		t.Fatalf("store.CreateSession: %v", err)
	}
	return id, sess
}
