package service

import (
	"errors"
	"fmt"
)

// Domain errors returned by the services. The router maps each to a response.
var (
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("login required")
	ErrForbidden          = errors.New("not the author")
	ErrNotFound           = errors.New("not found")
)

// Reasons carried by InvalidCredentialsError.
const (
	ReasonUnknownUsername = "unknown_username"
	ReasonBadPassword     = "bad_password"
)

// InvalidCredentialsError reports a failed login and why.
type InvalidCredentialsError struct {
	Reason string
}

func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials: " + e.Reason
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// ValidationError reports an input the service refuses to accept.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StorageError wraps a datastore failure. It is fatal to the current request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
