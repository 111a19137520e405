package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PGRepo struct {
	DB *sql.DB
}

const uniqueViolationCode = "23505"

// Create inserts a new user row.
func (r *PGRepo) Create(ctx context.Context, user User) (int64, error) {
	const query = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING user_id`

	var userID int64
	err := r.DB.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return userID, nil
}

// GetByEmail fetches a user by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT user_id, username, email, password_hash, created_at
FROM users
WHERE email = $1
LIMIT 1`

	var user User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// UpsertOAuth inserts or refreshes an externally authenticated user.
func (r *PGRepo) UpsertOAuth(ctx context.Context, username, email string) (User, error) {
	const query = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, '')
ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
RETURNING user_id, username, email, password_hash, created_at`

	var user User
	err := r.DB.QueryRowContext(ctx, query, username, email).Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
