package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"blogapp/internal/models"
	"blogapp/internal/repository"
)

// timingPassword is hashed once and verified against when the username is
// unknown, so both login failure paths pay for one hash comparison.
const timingPassword = "blogapp-timing-equaliser"

// AuthService registers users and turns credentials into sessions.
type AuthService struct {
	users  repository.Credentials
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.Credentials, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Register hashes password and creates a new user.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Message: "required"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Message: "required"}
	}
	if len(password) > MaxPasswordBytes {
		return passwordTooLong()
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return storageErr("lookup user", err)
	}
	if existing != nil {
		return ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if _, err := s.users.Create(ctx, username, hash); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateUsername
		}
		return storageErr("create user", err)
	}
	return nil
}

// Login verifies credentials and returns a fresh session bound to the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return models.Session{}, storageErr("lookup user", err)
	}
	if u == nil {
		s.hasher.Verify(s.timingHash(), password)
		return models.Session{}, &InvalidCredentialsError{Reason: ReasonUnknownUsername}
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return models.Session{}, &InvalidCredentialsError{Reason: ReasonBadPassword}
	}
	return models.Session{UserID: u.ID, Username: u.Username}, nil
}

// Logout clears all session state. Safe on a nil or already empty session.
func (s *AuthService) Logout(sess *models.Session) {
	sess.Clear()
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(timingPassword)
	})
	return s.dummyHash
}
