package mocks

import (
	"context"

	"github.com/quizhub/quizhub/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, attempt models.Attempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) Top(ctx context.Context, limit int) ([]models.AttemptEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptEntry), args.Error(1)
}

func (m *MockAttemptRepository) ByUser(ctx context.Context, userID int64, limit int) ([]models.AttemptEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptEntry), args.Error(1)
}

func (m *MockAttemptRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
