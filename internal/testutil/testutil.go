package testutil

import (
	"context"
	"database/sql"
	"testing"

	"blogapp/internal/repository"
	"blogapp/internal/repository/db"
)

// OpenInMemoryDB opens an in-memory SQLite database with the blog schema.
// The name keeps databases of parallel tests apart.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	conn, _, err := db.InitDB(db.Options{
		Driver: string(db.SQLite),
		Path:   "file:" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewRepository returns repositories over a fresh in-memory database.
func NewRepository(t *testing.T, name string) *repository.Repository {
	t.Helper()
	return repository.NewRepository(OpenInMemoryDB(t, name), db.SQLite)
}

// SeedUser inserts a user row directly, bypassing hashing.
func SeedUser(t *testing.T, repos *repository.Repository, username, hash string) int {
	t.Helper()
	id, err := repos.Users.Create(context.Background(), username, hash)
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return id
}
