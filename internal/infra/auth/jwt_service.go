// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"quizdeck/config"
	"quizdeck/internal/domain/entity"
	"quizdeck/internal/domain/service"
	"quizdeck/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenTypeReset   = "reset"

	resetTokenTTL = 24 * time.Hour
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	resetSecret   string        // Secret key for signing password-reset tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// jwtClaims is the wire format of the custom claims.
// Access tokens carry email and fullName; refresh and reset tokens carry only the subject.
type jwtClaims struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
// All three secrets come from configuration; there are no baked-in keys.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" || cfg.SecretKey.Reset == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		resetSecret:   cfg.SecretKey.Reset,
		accessTTL:     cfg.Token.AccessTTL,
		refreshTTL:    cfg.Token.RefreshTTL,
	}, nil
}

// GenerateTokenPair creates a new access token and refresh token for a given user.
func (s *jwtService) GenerateTokenPair(user *entity.User) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.signToken(jwtClaims{
		Email:    user.Email,
		FullName: user.FullName,
		Type:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		},
	}, s.accessSecret)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err = s.signToken(jwtClaims{
		Type: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshTTL)),
		},
	}, s.refreshSecret)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to sign refresh token")
	}

	return accessToken, refreshToken, nil
}

// GenerateResetToken creates a password-reset token with a fixed one-day expiry.
func (s *jwtService) GenerateResetToken(userID uuid.UUID) (string, error) {
	token, err := s.signToken(jwtClaims{
		Type: tokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(resetTokenTTL)),
		},
	}, s.resetSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign reset token")
	}

	return token, nil
}

// ValidateAccessToken checks an access token and returns its claims.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.parseToken(tokenString, s.accessSecret, tokenTypeAccess)
}

// ValidateRefreshToken checks a refresh token and returns its claims.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return s.parseToken(tokenString, s.refreshSecret, tokenTypeRefresh)
}

// ValidateResetToken checks a password-reset token and returns its claims.
func (s *jwtService) ValidateResetToken(tokenString string) (*service.Claims, error) {
	return s.parseToken(tokenString, s.resetSecret, tokenTypeReset)
}

// HashToken returns the hex SHA-256 digest of a raw token string.
func (s *jwtService) HashToken(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))

	return hex.EncodeToString(sum[:])
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// signToken is a private helper to create an HS256-signed JWT.
func (s *jwtService) signToken(claims jwtClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// parseToken verifies signature, expiry and token type, mapping library
// errors onto the service sentinels so callers can tell expiry apart from
// any other failure.
func (s *jwtService) parseToken(tokenString, secret, wantType string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, errors.Wrap(service.ErrTokenInvalid, "failed to parse token claims")
	}

	if claims.Type != wantType {
		return nil, errors.Wrapf(service.ErrTokenInvalid, "unexpected token type %q", claims.Type)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "invalid subject in token")
	}

	return &service.Claims{
		UserID:           userID,
		Email:            claims.Email,
		FullName:         claims.FullName,
		Type:             claims.Type,
		RegisteredClaims: claims.RegisteredClaims,
	}, nil
}
