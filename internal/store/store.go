package store

import (
	"context"

	"carremote/auth-service/internal/models"
)

// Credential pairs a stored user with its bcrypt password hash. The hash
// never travels past the auth layer.
type Credential struct {
	User         models.User
	PasswordHash string
}

type Store interface {
	// GetByEmail returns the credential registered under email.
	// Returns ErrUserNotFound when no record exists.
	GetByEmail(ctx context.Context, email string) (Credential, error)

	// CreateUser inserts a new user record. The store's unique constraint on
	// email is the single authority on duplicates; a violation is reported as
	// ErrEmailTaken, so concurrent registrations cannot produce two records.
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
}
