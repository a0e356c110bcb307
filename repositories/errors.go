package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned by CreateUser for a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)

// NotFoundError reports an operation that targeted a missing record.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
