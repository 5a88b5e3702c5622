package service

import (
	"context"

	"blogapp/internal/models"
	"blogapp/internal/repository"
)

// Authorization covers registration, login and logout.
type Authorization interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (models.Session, error)
	Logout(sess *models.Session)
}

// Blog exposes post CRUD; every mutation takes the caller's session explicitly.
type Blog interface {
	List(ctx context.Context, page Page) ([]models.Post, error)
	Get(ctx context.Context, id int) (models.Post, error)
	GetForEdit(ctx context.Context, sess models.Session, id int) (models.Post, error)
	Create(ctx context.Context, sess models.Session, title, body string) (models.Post, error)
	Update(ctx context.Context, sess models.Session, id int, title, body string) error
	Delete(ctx context.Context, sess models.Session, id int) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Blog
}

// Options tunes service construction.
type Options struct {
	BcryptCost int
	PageLimit  int
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, NewBcryptHasher(opts.BcryptCost)),
		Blog:          NewPostService(repos.Posts, opts.PageLimit),
	}
}
