package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	deliverycontext "quizdeck/internal/delivery/context"
	domainerrors "quizdeck/internal/domain/errors"
	"quizdeck/internal/domain/repository"
	"quizdeck/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// accessTokenCookie is the cookie the login handlers set alongside the JSON body.
const accessTokenCookie = "accessToken"

// bodyTokenLimit bounds how much of the request body the body extractor reads.
const bodyTokenLimit = 1 << 20

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the access token and resolves the requesting user.
// The token is looked for in a fixed order: the accessToken cookie, then the
// Authorization Bearer header, then an accessToken field in a JSON body. The
// first present source wins even if a later one would have verified.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			return domainerrors.ErrAccessTokenMissing
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				return domainerrors.ErrAccessTokenExpired
			}

			return domainerrors.ErrAccessTokenInvalid
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrPrincipalNotFound
			}

			return errors.Wrap(err, "failed to resolve authenticated user")
		}

		deliverycontext.SetCurrentUser(c, user.Sanitized())

		return next(c)
	}
}

// extractAccessToken walks the token sources in their fixed order and returns
// the first token present, or empty when no source carries one.
func extractAccessToken(c echo.Context) string {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		if tokenString := strings.TrimPrefix(authHeader, "Bearer "); tokenString != authHeader {
			return strings.TrimSpace(tokenString)
		}
	}

	return tokenFromBody(c)
}

// tokenFromBody reads an accessToken field out of a JSON request body, then
// restores the body so downstream binding still sees it.
func tokenFromBody(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return ""
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(req.Body, bodyTokenLimit))
	if err != nil {
		return ""
	}
	req.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return ""
	}

	return payload.AccessToken
}
