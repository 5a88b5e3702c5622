package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogapp/internal/models"
	"blogapp/internal/repository/db"
)

type PostSQL struct {
	db *sql.DB

	insertSQL string
	selectSQL string
	listSQL   string
	updateSQL string
	deleteSQL string
}

func NewPostSQL(conn *sql.DB, dialect db.Dialect) *PostSQL {
	return &PostSQL{
		db:        conn,
		insertSQL: dialect.Rebind(insertPostSQL),
		selectSQL: dialect.Rebind(selectPostByIDSQL),
		listSQL:   dialect.Rebind(listPostsSQL),
		updateSQL: dialect.Rebind(updatePostSQL),
		deleteSQL: dialect.Rebind(deletePostSQL),
	}
}

var _ Posts = (*PostSQL)(nil)

const (
	insertPostSQL = `INSERT INTO posts (author_id, created, title, body) VALUES (?, ?, ?, ?) RETURNING id`

	selectPostByIDSQL = `
		SELECT p.id, p.author_id, p.created, p.title, p.body, u.username
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`

	listPostsSQL = `
		SELECT p.id, p.author_id, p.created, p.title, p.body, u.username
		FROM posts p JOIN users u ON u.id = p.author_id
		ORDER BY p.created DESC, p.id DESC
		LIMIT ? OFFSET ?`

	updatePostSQL = `UPDATE posts SET title = ?, body = ? WHERE id = ?`
	deletePostSQL = `DELETE FROM posts WHERE id = ?`
)

// Create inserts a post and returns its ID. Created is stored as UTC.
func (r *PostSQL) Create(ctx context.Context, p models.Post) (int, error) {
	created := p.Created
	if created.IsZero() {
		created = time.Now()
	}
	var id int
	err := r.db.QueryRowContext(ctx, r.insertSQL, p.AuthorID, created.UTC(), p.Title, p.Body).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert post for author %d: %w", p.AuthorID, err)
	}
	return id, nil
}

// GetByID fetches a post with its author's username. Returns (nil, nil) if not found.
func (r *PostSQL) GetByID(ctx context.Context, id int) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, r.selectSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %d: %w", id, err)
	}
	return &p, nil
}

// List returns a window of posts, most recent first.
func (r *PostSQL) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, r.listSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// Update overwrites title and body. Returns sql.ErrNoRows if the row is gone.
func (r *PostSQL) Update(ctx context.Context, id int, title, body string) error {
	res, err := r.db.ExecContext(ctx, r.updateSQL, title, body, id)
	if err != nil {
		return fmt.Errorf("update post %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// Delete removes the post. Returns sql.ErrNoRows if the row is gone.
func (r *PostSQL) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.deleteSQL, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return requireAffected(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Created, &p.Title, &p.Body, &p.AuthorUsername); err != nil {
		return models.Post{}, err
	}
	p.Created = p.Created.UTC()
	return p, nil
}

func requireAffected(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for post %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("post %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
