package users

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE users (
	user_id     BIGINT PRIMARY KEY,
	tg_username TEXT,
	full_name   TEXT NOT NULL,
	email       TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);`

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return NewRepository(db)
}

func TestUpsertInsertsNewUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := User{
		TelegramID: 42,
		Username:   "alice",
		FullName:   "Alice Example",
		Email:      "alice@example.com",
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(ctx, u))

	got, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Alice Example", got.FullName)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "alice", got.Username)
}

func TestUpsertOverwritesExistingRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := User{TelegramID: 42, Username: "alice", FullName: "Alice", Email: "old@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Upsert(ctx, first))

	second := first
	second.FullName = "Alice Renamed"
	second.Email = "new@example.com"
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.Upsert(ctx, second))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "re-onboarding must not create a second row")

	got, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", got.FullName)
	assert.Equal(t, "new@example.com", got.Email)
}

func TestGetByTelegramIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByTelegramID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertAllowsEmptyUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := User{TelegramID: 7, FullName: "No Handle", Email: "nh@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Upsert(ctx, u))

	got, err := repo.GetByTelegramID(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.Username)
}

func TestErrorsWrapStorageUnavailable(t *testing.T) {
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo := NewRepository(db)
	err = repo.Upsert(context.Background(), User{TelegramID: 1, FullName: "x", Email: "x@y.z", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = repo.Count(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
