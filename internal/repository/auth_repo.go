package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapp/internal/models"
	"blogapp/internal/repository/db"
)

type UserSQL struct {
	db *sql.DB

	insertSQL string
	selectSQL string
}

func NewUserSQL(conn *sql.DB, dialect db.Dialect) *UserSQL {
	return &UserSQL{
		db:        conn,
		insertSQL: dialect.Rebind(insertUserSQL),
		selectSQL: dialect.Rebind(selectUserByUsernameSQL),
	}
}

// Ensure implementation of Credentials interface at compile time.
var _ Credentials = (*UserSQL)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID.
// A taken username yields ErrDuplicate.
func (r *UserSQL) Create(ctx context.Context, username, passwordHash string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, r.insertSQL, username, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", username, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	return id, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserSQL) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, r.selectSQL, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}
