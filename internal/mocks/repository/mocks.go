// Package repository provides hand-written testify mocks for the domain
// repository interfaces.
package repository

import (
	"context"

	"quizdeck/internal/domain/entity"
	"quizdeck/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, tokenHash string) error {
	args := m.Called(ctx, id, tokenHash)

	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)

	return args.Error(0)
}

// MockQuestionRepository mocks repository.QuestionRepository.
type MockQuestionRepository struct {
	mock.Mock
}

func NewMockQuestionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuestionRepository {
	m := &MockQuestionRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)

	return args.Error(0)
}

func (m *MockQuestionRepository) FindRandomByCategory(ctx context.Context, category string, limit int) ([]*entity.Question, error) {
	args := m.Called(ctx, category, limit)
	if questions, ok := args.Get(0).([]*entity.Question); ok {
		return questions, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockTransactionManager mocks repository.TransactionManager. By default
// Execute runs the callback against the factory configured via Factory.
type MockTransactionManager struct {
	mock.Mock
}

func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	args := m.Called()
	if repo, ok := args.Get(0).(repository.UserRepository); ok {
		return repo
	}

	return nil
}

func (m *MockRepositoryFactory) QuestionRepo() repository.QuestionRepository {
	args := m.Called()
	if repo, ok := args.Get(0).(repository.QuestionRepository); ok {
		return repo
	}

	return nil
}
