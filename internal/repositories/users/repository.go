// Package users is the credential store: a collection of user records keyed
// by email, with sqlite, postgres, firestore and in-memory backends.
package users

import (
	"context"
	"errors"

	"github.com/edu2job/edu2job-server/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by Insert when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository is the credential store contract used by the auth flow.
// Insert must fail atomically with ErrEmailTaken on a duplicate email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
}
