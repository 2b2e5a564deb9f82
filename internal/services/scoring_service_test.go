package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mathQuiz mirrors the canonical example: Q1 "What is 2+2?" (correct "4"),
// Q2 "What is 3+3?" (correct "6").
func testMathQuiz() *models.Quiz {
	return &models.Quiz{
		ID:        1,
		Title:     "Math",
		CreatorID: 1,
		Questions: []models.Question{
			{
				ID:     10,
				QuizID: 1,
				Text:   "What is 2+2?",
				Options: []models.Option{
					{ID: 100, QuestionID: 10, Text: "3"},
					{ID: 101, QuestionID: 10, Text: "4", IsCorrect: true},
					{ID: 102, QuestionID: 10, Text: "5"},
				},
			},
			{
				ID:     11,
				QuizID: 1,
				Text:   "What is 3+3?",
				Options: []models.Option{
					{ID: 103, QuestionID: 11, Text: "6", IsCorrect: true},
					{ID: 104, QuestionID: 11, Text: "7"},
				},
			},
		},
	}
}

func newScoringFixture(t *testing.T, quiz *models.Quiz) (*mocks.MockQuizRepository, *mocks.MockAttemptRepository, ScoringService) {
	t.Helper()
	quizzes := new(mocks.MockQuizRepository)
	attempts := new(mocks.MockAttemptRepository)
	quizzes.On("Get", mock.Anything, quiz.ID).Return(quiz, nil)
	return quizzes, attempts, NewScoringService(quizzes, attempts)
}

func TestSubmitAllCorrect(t *testing.T) {
	quiz := testMathQuiz()
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, models.Attempt{
		QuizID: 1, UserID: 7, Score: 2, TotalQuestions: 2,
	}).Return(int64(55), nil)

	result, err := svc.Submit(context.Background(), 7, 1, map[int64]int64{10: 101, 11: 103}, false)
	require.NoError(t, err)

	assert.Equal(t, int64(55), result.AttemptID)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 100.0, result.Percentage)
	attempts.AssertExpectations(t)
}

func TestSubmitPartiallyCorrect(t *testing.T) {
	quiz := testMathQuiz()
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	// Q1 answered "4", Q2 answered "7" (wrong): 1/2 = 50%.
	result, err := svc.Submit(context.Background(), 7, 1, map[int64]int64{10: 101, 11: 104}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 50.0, result.Percentage)
}

func TestSubmitEmptyAnswers(t *testing.T) {
	quiz := testMathQuiz()
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	result, err := svc.Submit(context.Background(), 7, 1, map[int64]int64{}, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 0.0, result.Percentage)
}

func TestSubmitForeignOptionIDIsIncorrect(t *testing.T) {
	quiz := testMathQuiz()
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	// 103 is Q2's correct option; naming it for Q1 scores nothing, and
	// 999 does not exist at all. Neither is an error.
	result, err := svc.Submit(context.Background(), 7, 1, map[int64]int64{10: 103, 11: 999}, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
}

func TestSubmitZeroCorrectOptions(t *testing.T) {
	quiz := &models.Quiz{
		ID: 1,
		Questions: []models.Question{
			{ID: 10, Options: []models.Option{{ID: 100, Text: "a"}, {ID: 101, Text: "b"}}},
		},
	}
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	// The question is unanswerable; any submission scores zero, no crash.
	result, err := svc.Submit(context.Background(), 7, 1, map[int64]int64{10: 100}, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)
}

func TestSubmitMultipleCorrectTakesLowestID(t *testing.T) {
	quiz := &models.Quiz{
		ID: 1,
		Questions: []models.Question{
			{ID: 10, Options: []models.Option{
				{ID: 100, Text: "a", IsCorrect: true},
				{ID: 101, Text: "b", IsCorrect: true},
			}},
		},
	}
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	result, err := svc.Submit(context.Background(), 7, 1, map[int64]int64{10: 100}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)

	// The higher-id flagged option does not count.
	result, err = svc.Submit(context.Background(), 7, 1, map[int64]int64{10: 101}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
}

func TestSubmitQuizWithoutQuestions(t *testing.T) {
	quiz := &models.Quiz{ID: 1, Title: "Empty"}
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, models.Attempt{
		QuizID: 1, UserID: 7, Score: 0, TotalQuestions: 0,
	}).Return(int64(1), nil)

	result, err := svc.Submit(context.Background(), 7, 1, nil, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0.0, result.Percentage)
}

func TestSubmitQuizNotFound(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	attempts := new(mocks.MockAttemptRepository)
	quizzes.On("Get", mock.Anything, int64(42)).Return(nil, sql.ErrNoRows)
	svc := NewScoringService(quizzes, attempts)

	_, err := svc.Submit(context.Background(), 7, 42, nil, false)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	attempts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitRecordsRevealFlag(t *testing.T) {
	quiz := testMathQuiz()
	_, attempts, svc := newScoringFixture(t, quiz)
	attempts.On("Insert", mock.Anything, mock.MatchedBy(func(a models.Attempt) bool {
		return a.AnswersRevealed
	})).Return(int64(1), nil)

	_, err := svc.Submit(context.Background(), 7, 1, nil, true)
	require.NoError(t, err)
	attempts.AssertExpectations(t)
}

func TestPercentageRounding(t *testing.T) {
	assert.Equal(t, 0.0, percentage(0, 0))
	assert.Equal(t, 0.0, percentage(0, 3))
	assert.Equal(t, 33.33, percentage(1, 3))
	assert.Equal(t, 66.67, percentage(2, 3))
	assert.Equal(t, 100.0, percentage(3, 3))
	assert.Equal(t, 50.0, percentage(1, 2))
}
