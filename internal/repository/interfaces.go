package repository

import (
	"context"
	"errors"

	"github.com/quizhub/quizhub/internal/models"
)

// ErrDuplicateUsername is returned by UserRepository.Insert when the username
// is already taken. The sqlite implementation translates the driver's unique
// constraint violation into this sentinel so callers never see raw storage
// errors.
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepository handles user data access
type UserRepository interface {
	Insert(ctx context.Context, username, passwordHash string) (int64, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// QuizRepository handles quiz, question, and option data access
type QuizRepository interface {
	Insert(ctx context.Context, quiz models.Quiz) (int64, error)
	Get(ctx context.Context, id int64) (*models.Quiz, error)
	CreatorID(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context, filter models.QuizFilter) ([]models.QuizSummary, error)
	Update(ctx context.Context, quiz models.Quiz, replaceQuestions bool) error
	Delete(ctx context.Context, id int64) error
}

// AttemptRepository handles attempt data access. Attempts are append-only:
// there is deliberately no update operation.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
	Top(ctx context.Context, limit int) ([]models.AttemptEntry, error)
	ByUser(ctx context.Context, userID int64, limit int) ([]models.AttemptEntry, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
