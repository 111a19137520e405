package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials reports a failed sign-in. The message is generic
// so responses do not leak whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Signup registers a new user with a bcrypt-hashed password.
func (s *Service) Signup(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return User{}, errors.New("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	userID, err := s.Repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.UserID = userID
	return user, nil
}

// Signin validates credentials against the stored hash. Users created
// through an external identity provider have no hash and cannot sign in
// with a password.
func (s *Service) Signin(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpsertFromAuth persists the identity returned by the OAuth provider.
func (s *Service) UpsertFromAuth(ctx context.Context, username, email string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, errors.New("email is required")
	}
	if strings.TrimSpace(username) == "" {
		username = email
	}
	return s.Repo.UpsertOAuth(ctx, username, email)
}
