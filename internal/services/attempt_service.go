package services

import (
	"context"

	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
)

const maxListLimit = 200

// AttemptService reads the attempt ledger: global leaderboard, per-user
// history, and the user-initiated bulk clear.
type AttemptService interface {
	Leaderboard(ctx context.Context, limit int) ([]models.AttemptEntry, error)
	History(ctx context.Context, userID int64, limit int) ([]models.AttemptEntry, error)
	ClearHistory(ctx context.Context, userID int64) (int64, error)
}

type attemptService struct {
	attempts         repository.AttemptRepository
	leaderboardLimit int
	historyLimit     int
}

// NewAttemptService creates a new AttemptService with default limits applied
// when a caller passes none.
func NewAttemptService(attempts repository.AttemptRepository, leaderboardLimit, historyLimit int) AttemptService {
	return &attemptService{
		attempts:         attempts,
		leaderboardLimit: leaderboardLimit,
		historyLimit:     historyLimit,
	}
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func (s *attemptService) Leaderboard(ctx context.Context, limit int) ([]models.AttemptEntry, error) {
	entries, err := s.attempts.Top(ctx, clampLimit(limit, s.leaderboardLimit))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.AttemptEntry{}
	}
	return entries, nil
}

func (s *attemptService) History(ctx context.Context, userID int64, limit int) ([]models.AttemptEntry, error) {
	entries, err := s.attempts.ByUser(ctx, userID, clampLimit(limit, s.historyLimit))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.AttemptEntry{}
	}
	return entries, nil
}

func (s *attemptService) ClearHistory(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)
	n, err := s.attempts.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	log.Info("cleared attempt history: user_id=%d, deleted=%d", userID, n)
	return n, nil
}
