package mocks

import (
	"context"

	"github.com/quizhub/quizhub/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockQuizRepository is a mock implementation of repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Insert(ctx context.Context, quiz models.Quiz) (int64, error) {
	args := m.Called(ctx, quiz)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) CreatorID(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context, filter models.QuizFilter) ([]models.QuizSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz models.Quiz, replaceQuestions bool) error {
	args := m.Called(ctx, quiz, replaceQuestions)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
