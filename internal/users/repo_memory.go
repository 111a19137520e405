package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[int64]User
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]User)}
}

// Create inserts a new user.
func (r *MemoryRepo) Create(ctx context.Context, user User) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, existing := range r.byID {
		if strings.ToLower(existing.Email) == email {
			return 0, ErrEmailTaken
		}
	}

	r.nextID++
	user.UserID = r.nextID
	user.CreatedAt = time.Now()
	r.byID[user.UserID] = user
	return user.UserID, nil
}

// GetByEmail fetches a user by email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range r.byID {
		if strings.ToLower(user.Email) == email {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

// UpsertOAuth inserts or refreshes an externally authenticated user.
func (r *MemoryRepo) UpsertOAuth(ctx context.Context, username, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	lower := strings.ToLower(email)
	for id, user := range r.byID {
		if strings.ToLower(user.Email) == lower {
			user.Username = username
			r.byID[id] = user
			return user, nil
		}
	}

	r.nextID++
	user := User{
		UserID:    r.nextID,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}
	r.byID[user.UserID] = user
	return user, nil
}

var _ Repo = (*MemoryRepo)(nil)
