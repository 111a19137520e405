package users

import (
	"context"
	"errors"
)

// ErrEmailTaken reports that the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrNotFound reports that no user matches the lookup.
var ErrNotFound = errors.New("user not found")

type Repo interface {
	// Create inserts a new user and returns its id.
	Create(ctx context.Context, user User) (int64, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// UpsertOAuth inserts or refreshes a user signed in through an
	// external identity provider. Such users carry no password hash.
	UpsertOAuth(ctx context.Context, username, email string) (User, error)
}
