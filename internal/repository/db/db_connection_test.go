package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_SQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.db")

	conn, dialect, err := InitDB(Options{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	if dialect != SQLite {
		t.Fatalf("dialect = %q, want %q", dialect, SQLite)
	}

	for _, table := range []string{"users", "posts"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// schema is idempotent
	if err := ensureSchema(conn, SQLite); err != nil {
		t.Fatalf("second ensureSchema: %v", err)
	}
}

func TestInitDB_SQLiteEnforcesForeignKeys(t *testing.T) {
	conn, _, err := InitDB(Options{Path: filepath.Join(t.TempDir(), "fk.db")})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	_, err = conn.Exec(`INSERT INTO posts (author_id, created, title, body) VALUES (42, CURRENT_TIMESTAMP, 't', '')`)
	if err == nil {
		t.Fatalf("expected foreign key violation for unknown author")
	}
}

func TestInitDB_RejectsUnknownDriver(t *testing.T) {
	if _, _, err := InitDB(Options{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestInitDB_PostgresRequiresDSN(t *testing.T) {
	if _, _, err := InitDB(Options{Driver: "postgres"}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
