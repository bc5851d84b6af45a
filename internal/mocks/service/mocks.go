// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"time"

	"quizdeck/internal/domain/entity"
	"quizdeck/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokenPair(user *entity.User) (string, string, error) {
	args := m.Called(user)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) GenerateResetToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateResetToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) HashToken(tokenString string) string {
	args := m.Called(tokenString)

	return args.String(0)
}

func (m *MockTokenService) RefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockMailer mocks service.Mailer.
type MockMailer struct {
	mock.Mock
}

func NewMockMailer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMailer {
	m := &MockMailer{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	args := m.Called(ctx, to, resetURL)

	return args.Error(0)
}
