package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"math"

	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
)

// ScoringService grades a submitted answer set against the stored quiz and
// records the result as an immutable attempt.
type ScoringService interface {
	Submit(ctx context.Context, userID, quizID int64, answers map[int64]int64, answersRevealed bool) (*models.ScoreResult, error)
}

type scoringService struct {
	quizzes  repository.QuizRepository
	attempts repository.AttemptRepository
}

// NewScoringService creates a new ScoringService
func NewScoringService(quizzes repository.QuizRepository, attempts repository.AttemptRepository) ScoringService {
	return &scoringService{quizzes: quizzes, attempts: attempts}
}

func (s *scoringService) Submit(ctx context.Context, userID, quizID int64, answers map[int64]int64, answersRevealed bool) (*models.ScoreResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("scoring submission: quiz_id=%d, user_id=%d, answers=%d", quizID, userID, len(answers))

	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("quiz", quizID)
		}
		log.Error("failed to load quiz for scoring: %v", err)
		return nil, errors.NewInternalError(err)
	}

	score := scoreAnswers(quiz.Questions, answers)
	total := len(quiz.Questions)

	attemptID, err := s.attempts.Insert(ctx, models.Attempt{
		QuizID:          quizID,
		UserID:          userID,
		Score:           score,
		TotalQuestions:  total,
		AnswersRevealed: answersRevealed,
	})
	if err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	result := &models.ScoreResult{
		AttemptID:      attemptID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage(score, total),
	}
	log.Info("attempt recorded: id=%d, score=%d/%d", attemptID, score, total)
	return result, nil
}

// scoreAnswers compares the submitted option ids against the stored correct
// options. Correctness is resolved purely from stored data; the payload never
// carries correctness claims. A missing, unknown, or mismatched option id is
// simply incorrect.
func scoreAnswers(questions []models.Question, answers map[int64]int64) int {
	score := 0
	for _, q := range questions {
		correctID, ok := correctOptionID(q)
		if !ok {
			// Degenerate question with no correct option: unanswerable.
			continue
		}
		if answers[q.ID] == correctID {
			score++
		}
	}
	return score
}

// correctOptionID picks the option flagged correct. When an author flags
// several, the lowest option id wins; options arrive from the catalog in
// ascending id order, so the first flagged one is it.
func correctOptionID(q models.Question) (int64, bool) {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.ID, true
		}
	}
	return 0, false
}

func percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*100*100) / 100
}
