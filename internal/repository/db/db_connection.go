package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Options selects the engine and where to find it.
type Options struct {
	Driver string // "sqlite" | "postgres"
	Path   string // sqlite file (or file: URI)
	DSN    string // postgres connection string
}

// InitDB opens the configured database and ensures tables exist.
func InitDB(opts Options) (*sql.DB, Dialect, error) {
	switch Dialect(opts.Driver) {
	case "", SQLite:
		conn, err := openSQLite(opts.Path)
		return conn, SQLite, err
	case Postgres:
		conn, err := openPostgres(opts.DSN)
		return conn, Postgres, err
	default:
		return nil, "", fmt.Errorf("unsupported db driver %q", opts.Driver)
	}
}

// openSQLite opens/creates a SQLite DB file and ensures tables exist.
func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = defaultSQLitePath
	}
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db, SQLite); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}
	db, err := sql.Open(pgxDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureSchema(db, Postgres); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const (
	sqliteDriverName  = "sqlite"
	pgxDriverName     = "pgx"
	defaultSQLitePath = "blog.db"
)

const sqliteUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

const sqlitePosts = `
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    author_id INTEGER NOT NULL REFERENCES users(id),
    created TIMESTAMP NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT ''
);
`

const postgresUsers = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL
);
`

const postgresPosts = `
CREATE TABLE IF NOT EXISTS posts (
    id SERIAL PRIMARY KEY,
    author_id INTEGER NOT NULL REFERENCES users(id),
    created TIMESTAMP WITH TIME ZONE NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT ''
);
`

const postsCreatedIndex = `CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created DESC);`

// schemaFor returns the DDL statements for the dialect, in dependency order.
func schemaFor(d Dialect) []string {
	if d == Postgres {
		return []string{postgresUsers, postgresPosts, postsCreatedIndex}
	}
	return []string{sqliteUsers, sqlitePosts, postsCreatedIndex}
}

func ensureSchema(db *sql.DB, d Dialect) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range schemaFor(d) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
