// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"quizdeck/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// ForgotPasswordInput carries the email address requesting a reset link.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput carries the reset link parameters and the new password.
type ResetPasswordInput struct {
	UserID     uuid.UUID
	ResetToken string
	Password   string
}

// --- Output DTOs ---

// AuthOutput returns the sanitized user together with a fresh token pair.
// Register, Login and Refresh all produce this shape.
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// SessionUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type SessionUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error)
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
