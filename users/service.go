package users

import (
	"context"
	"time"

	"github.com/m3rciful/leadbot/core/logger"
	"log/slog"
)

// Service applies registration policy on top of the repository.
type Service struct {
	repo *Repository
}

// NewService creates a Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register stamps the registration time and upserts the lead. A returning
// user is silently overwritten with the fresh profile.
func (s *Service) Register(ctx context.Context, u User) error {
	u.CreatedAt = time.Now().UTC()

	start := time.Now()
	err := s.repo.Upsert(ctx, u)
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.Int64("user_id", u.TelegramID),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		logger.LogEvent(ctx, logger.SVCUsers, slog.LevelError, "user.register", attrs...)
		return err
	}
	logger.LogEvent(ctx, logger.SVCUsers, slog.LevelInfo, "user.register", attrs...)
	return nil
}

// Get returns the stored lead for the Telegram ID.
func (s *Service) Get(ctx context.Context, telegramID int64) (User, error) {
	return s.repo.GetByTelegramID(ctx, telegramID)
}

// Count reports how many leads have completed onboarding.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
