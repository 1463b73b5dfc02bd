package repository

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a row is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// validID reports whether id can be a primary key. Anything else is treated as not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
