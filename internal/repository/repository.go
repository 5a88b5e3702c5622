package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"blogapp/internal/models"
	"blogapp/internal/repository/db"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// Credentials is the credential store: username -> password hash.
type Credentials interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Posts is the post store keyed by id.
type Posts interface {
	Create(ctx context.Context, p models.Post) (int, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, offset, limit int) ([]models.Post, error)
	Update(ctx context.Context, id int, title, body string) error
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	Users Credentials
	Posts Posts
}

func NewRepository(conn *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{
		Users: NewUserSQL(conn, dialect),
		Posts: NewPostSQL(conn, dialect),
	}
}

// isUniqueViolation recognises unique-constraint failures from both engines.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
