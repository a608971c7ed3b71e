// Package users persists onboarded leads and exposes lookups over them.
package users

import "time"

// User is a single onboarded lead keyed by Telegram user ID.
type User struct {
	TelegramID int64     `db:"user_id"`
	Username   string    `db:"tg_username"`
	FullName   string    `db:"full_name"`
	Email      string    `db:"email"`
	CreatedAt  time.Time `db:"created_at"`
}
