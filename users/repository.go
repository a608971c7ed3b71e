package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrStorageUnavailable wraps any database failure so callers can present a
// single retry message without inspecting driver errors.
var ErrStorageUnavailable = errors.New("user storage unavailable")

// ErrNotFound is returned when no user exists for the given Telegram ID.
var ErrNotFound = errors.New("user not found")

// Repository provides access to the users table.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a Repository over an open database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the user or replaces every profile field if the Telegram ID
// already exists. Re-onboarding overwrites the previous row; created_at is
// bumped to the latest completion time.
func (r *Repository) Upsert(ctx context.Context, u User) error {
	const query = `
		INSERT INTO users (user_id, tg_username, full_name, email, created_at)
		VALUES (:user_id, :tg_username, :full_name, :email, :created_at)
		ON CONFLICT (user_id) DO UPDATE SET
			tg_username = excluded.tg_username,
			full_name   = excluded.full_name,
			email       = excluded.email,
			created_at  = excluded.created_at`

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		return fmt.Errorf("%w: upsert user %d: %v", ErrStorageUnavailable, u.TelegramID, err)
	}
	return nil
}

// GetByTelegramID returns the stored user or ErrNotFound.
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		r.db.Rebind(`SELECT user_id, tg_username, full_name, email, created_at FROM users WHERE user_id = ?`),
		telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("%w: get user %d: %v", ErrStorageUnavailable, telegramID, err)
	}
	return u, nil
}

// Count returns the number of onboarded users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("%w: count users: %v", ErrStorageUnavailable, err)
	}
	return n, nil
}
