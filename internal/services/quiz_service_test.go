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

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func validQuiz() models.Quiz {
	return models.Quiz{
		Title:     "Math",
		CreatorID: 1,
		Questions: []models.Question{
			{Text: "What is 2+2?", Options: []models.Option{{Text: "4", IsCorrect: true}}},
		},
	}
}

func TestCreateQuizEmptyTitle(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)

	quiz := validQuiz()
	quiz.Title = "   "
	_, err := svc.CreateQuiz(context.Background(), quiz)

	assertAppError(t, err, errors.ErrCodeValidation)
	quizzes.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateQuizQuestionWithoutOptions(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)

	quiz := validQuiz()
	quiz.Questions[0].Options = nil
	_, err := svc.CreateQuiz(context.Background(), quiz)

	assertAppError(t, err, errors.ErrCodeValidation)
}

func TestCreateQuizOK(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)

	quiz := validQuiz()
	stored := quiz
	stored.ID = 9
	quizzes.On("Insert", mock.Anything, quiz).Return(int64(9), nil)
	quizzes.On("Get", mock.Anything, int64(9)).Return(&stored, nil)

	created, err := svc.CreateQuiz(context.Background(), quiz)
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	quizzes.AssertExpectations(t)
}

func TestGetQuizNotFound(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)
	quizzes.On("Get", mock.Anything, int64(42)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetQuiz(context.Background(), 42)
	assertAppError(t, err, errors.ErrCodeNotFound)
}

func TestDeleteQuizMissingIsNotFound(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)
	quizzes.On("CreatorID", mock.Anything, int64(42)).Return(int64(0), sql.ErrNoRows)

	err := svc.DeleteQuiz(context.Background(), 1, 42)
	assertAppError(t, err, errors.ErrCodeNotFound)
}

func TestDeleteQuizNotCreatorIsForbidden(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)
	quizzes.On("CreatorID", mock.Anything, int64(5)).Return(int64(2), nil)

	err := svc.DeleteQuiz(context.Background(), 1, 5)

	// FORBIDDEN, not NOT_FOUND: the quiz exists but is not the requester's.
	assertAppError(t, err, errors.ErrCodeForbidden)
	quizzes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteQuizByCreator(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)
	quizzes.On("CreatorID", mock.Anything, int64(5)).Return(int64(1), nil)
	quizzes.On("Delete", mock.Anything, int64(5)).Return(nil)

	require.NoError(t, svc.DeleteQuiz(context.Background(), 1, 5))
	quizzes.AssertExpectations(t)
}

func TestUpdateQuizNotCreatorIsForbidden(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)
	quizzes.On("CreatorID", mock.Anything, int64(5)).Return(int64(2), nil)

	quiz := validQuiz()
	quiz.ID = 5
	_, err := svc.UpdateQuiz(context.Background(), 1, quiz, false)

	assertAppError(t, err, errors.ErrCodeForbidden)
	quizzes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestListQuizzesEmpty(t *testing.T) {
	quizzes := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizzes)
	quizzes.On("List", mock.Anything, models.QuizFilter{}).Return(nil, nil)

	list, err := svc.ListQuizzes(context.Background(), models.QuizFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
