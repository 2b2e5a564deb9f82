package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
)

// QuizService is the quiz catalog: authoring, lookup, and creator-scoped
// mutation rights.
type QuizService interface {
	CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error)
	GetQuiz(ctx context.Context, id int64) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, filter models.QuizFilter) ([]models.QuizSummary, error)
	UpdateQuiz(ctx context.Context, requesterID int64, quiz models.Quiz, replaceQuestions bool) (*models.Quiz, error)
	DeleteQuiz(ctx context.Context, requesterID, id int64) error
}

type quizService struct {
	quizzes repository.QuizRepository
}

// NewQuizService creates a new QuizService
func NewQuizService(quizzes repository.QuizRepository) QuizService {
	return &quizService{quizzes: quizzes}
}

func validateQuiz(quiz models.Quiz) error {
	if strings.TrimSpace(quiz.Title) == "" {
		return errors.NewValidationError("title", "must not be empty")
	}
	for _, q := range quiz.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return errors.NewValidationError("question text", "must not be empty")
		}
		if len(q.Options) == 0 {
			return errors.NewValidationError("options", "each question needs at least one option")
		}
		for _, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				return errors.NewValidationError("option text", "must not be empty")
			}
		}
	}
	return nil
}

func (s *quizService) CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating quiz: title=%s, creator_id=%d", quiz.Title, quiz.CreatorID)

	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}
	quiz.Title = strings.TrimSpace(quiz.Title)

	id, err := s.quizzes.Insert(ctx, quiz)
	if err != nil {
		log.Error("failed to create quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.quizzes.Get(ctx, id)
	if err != nil {
		log.Error("failed to load created quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("quiz created: id=%d, title=%s", created.ID, created.Title)
	return created, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	quiz, err := s.quizzes.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("quiz", id)
		}
		return nil, errors.NewInternalError(err)
	}
	return quiz, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, filter models.QuizFilter) ([]models.QuizSummary, error) {
	quizzes, err := s.quizzes.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if quizzes == nil {
		quizzes = []models.QuizSummary{}
	}
	return quizzes, nil
}

// requireCreator checks existence before ownership so a missing quiz is
// NOT_FOUND and somebody else's quiz is FORBIDDEN, never the other way round.
func (s *quizService) requireCreator(ctx context.Context, requesterID, quizID int64) error {
	creatorID, err := s.quizzes.CreatorID(ctx, quizID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("quiz", quizID)
		}
		return errors.NewInternalError(err)
	}
	if creatorID != requesterID {
		return errors.NewForbiddenError("only the quiz creator may modify it")
	}
	return nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, requesterID int64, quiz models.Quiz, replaceQuestions bool) (*models.Quiz, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating quiz: id=%d, requester_id=%d", quiz.ID, requesterID)

	if err := s.requireCreator(ctx, requesterID, quiz.ID); err != nil {
		return nil, err
	}
	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}
	quiz.Title = strings.TrimSpace(quiz.Title)

	if err := s.quizzes.Update(ctx, quiz, replaceQuestions); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("quiz", quiz.ID)
		}
		log.Error("failed to update quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}

	updated, err := s.quizzes.Get(ctx, quiz.ID)
	if err != nil {
		log.Error("failed to load updated quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("quiz updated: id=%d", quiz.ID)
	return updated, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, requesterID, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting quiz: id=%d, requester_id=%d", id, requesterID)

	if err := s.requireCreator(ctx, requesterID, id); err != nil {
		return err
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("quiz", id)
		}
		log.Error("failed to delete quiz: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("quiz deleted: id=%d", id)
	return nil
}
