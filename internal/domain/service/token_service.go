package service

import (
	"errors"
	"time"

	"quizdeck/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sentinel errors for token verification. Callers distinguish an expired
// token (401) from any other verification failure (403).
var (
	// ErrTokenExpired is returned when a token's signature is valid but its expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for any other verification failure (bad signature, malformed, wrong claims).
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims defines the custom claims carried by the JWT tokens.
// Access tokens additionally embed Email and FullName for fast identity display.
type Claims struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	Type     string // "access", "refresh" or "reset"
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
// Verification is deterministic and side-effect-free.
type TokenService interface {
	// GenerateTokenPair creates a new access token and refresh token for a given user.
	GenerateTokenPair(user *entity.User) (accessToken string, refreshToken string, err error)

	// GenerateResetToken creates a single-purpose password-reset token with a fixed 24h expiry.
	GenerateResetToken(userID uuid.UUID) (string, error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// ValidateResetToken checks a password-reset token and returns its claims.
	ValidateResetToken(tokenString string) (*Claims, error)

	// HashToken returns the hex SHA-256 digest of a raw token, suitable for
	// storage in the user's refresh-token slot.
	HashToken(tokenString string) string

	// RefreshTokenDuration returns the configured duration for refresh tokens.
	RefreshTokenDuration() time.Duration
}
