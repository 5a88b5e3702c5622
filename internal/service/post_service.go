package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"blogapp/internal/models"
	"blogapp/internal/repository"
)

// MaxPageLimit bounds a single listing.
const MaxPageLimit = 100

// Page is an optional skip/limit window over the post listing.
type Page struct {
	Skip  int
	Limit int // 0 means the service page limit
}

// normalize clamps Skip at 0 and Limit to (0, max].
func (p Page) normalize(max int) Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 || p.Limit > max {
		p.Limit = max
	}
	return p
}

// PostService implements post CRUD with author-only mutation.
type PostService struct {
	posts     repository.Posts
	now       func() time.Time
	pageLimit int
}

func NewPostService(posts repository.Posts, pageLimit int) *PostService {
	if pageLimit <= 0 || pageLimit > MaxPageLimit {
		pageLimit = MaxPageLimit
	}
	return &PostService{posts: posts, now: time.Now, pageLimit: pageLimit}
}

// List returns posts most recent first.
func (s *PostService) List(ctx context.Context, page Page) ([]models.Post, error) {
	page = page.normalize(s.pageLimit)
	posts, err := s.posts.List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	return posts, nil
}

// Get returns a single post or ErrNotFound.
func (s *PostService) Get(ctx context.Context, id int) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, storageErr("get post", err)
	}
	if p == nil {
		return models.Post{}, ErrNotFound
	}
	return *p, nil
}

// Create stores a new post authored by the session's user.
func (s *PostService) Create(ctx context.Context, sess models.Session, title, body string) (models.Post, error) {
	if !sess.IsAuthenticated() {
		return models.Post{}, ErrUnauthenticated
	}
	if err := validateTitle(title); err != nil {
		return models.Post{}, err
	}

	p := models.Post{
		AuthorID:       sess.UserID,
		Created:        s.now().UTC().Truncate(time.Microsecond),
		Title:          title,
		Body:           body,
		AuthorUsername: sess.Username,
	}
	id, err := s.posts.Create(ctx, p)
	if err != nil {
		return models.Post{}, storageErr("create post", err)
	}
	p.ID = id
	return p, nil
}

// GetForEdit returns the post if it exists and the session owns it.
// Checks run in order: session, existence, authorship.
func (s *PostService) GetForEdit(ctx context.Context, sess models.Session, id int) (models.Post, error) {
	if !sess.IsAuthenticated() {
		return models.Post{}, ErrUnauthenticated
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if p.AuthorID != sess.UserID {
		return models.Post{}, ErrForbidden
	}
	return p, nil
}

// Update overwrites title and body of a post the session owns.
func (s *PostService) Update(ctx context.Context, sess models.Session, id int, title, body string) error {
	if _, err := s.GetForEdit(ctx, sess, id); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := s.posts.Update(ctx, id, title, body); err != nil {
		return mutationErr("update post", err)
	}
	return nil
}

// Delete permanently removes a post the session owns.
func (s *PostService) Delete(ctx context.Context, sess models.Session, id int) error {
	if _, err := s.GetForEdit(ctx, sess, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return mutationErr("delete post", err)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "required"}
	}
	return nil
}

// mutationErr treats a row that vanished between check and write as NotFound.
func mutationErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return storageErr(op, err)
}
