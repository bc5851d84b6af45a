package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "quizdeck/internal/delivery/context"
	"quizdeck/internal/domain/entity"
	domainerrors "quizdeck/internal/domain/errors"
	"quizdeck/internal/domain/repository"
	"quizdeck/internal/domain/service"
	mockRepo "quizdeck/internal/mocks/repository"
	mockSvc "quizdeck/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	tokenSvc   *mockSvc.MockTokenService
	userRepo   *mockRepo.MockUserRepository
	middleware *AuthMiddleware
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	return &authFixture{
		tokenSvc:   tokenSvc,
		userRepo:   userRepo,
		middleware: NewAuthMiddleware(tokenSvc, userRepo),
	}
}

func newEchoContext(req *http.Request) echo.Context {
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func passingHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true

		return nil
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	fixture := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	c := newEchoContext(req)

	called := false
	err := fixture.middleware.Authenticate(passingHandler(&called))(c)

	require.Error(t, err)
	assert.False(t, called)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.Equal(t, "ACCESS_TOKEN_MISSING", appErr.ErrorCode())
}

func TestAuthMiddleware_CookieWinsOverHeader(t *testing.T) {
	fixture := newAuthFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie-token"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	c := newEchoContext(req)

	fixture.tokenSvc.On("ValidateAccessToken", "cookie-token").
		Return(&service.Claims{UserID: user.ID, Type: "access"}, nil)
	fixture.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	called := false
	err := fixture.middleware.Authenticate(passingHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)

	current := deliverycontext.GetCurrentUser(c)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
	assert.Empty(t, current.PasswordHash)
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	fixture := newAuthFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	c := newEchoContext(req)

	fixture.tokenSvc.On("ValidateAccessToken", "header-token").
		Return(&service.Claims{UserID: user.ID, Type: "access"}, nil)
	fixture.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	called := false
	err := fixture.middleware.Authenticate(passingHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthMiddleware_BodyToken_PreservesBody(t *testing.T) {
	fixture := newAuthFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	body := `{"accessToken":"body-token","other":"field"}`
	req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := newEchoContext(req)

	fixture.tokenSvc.On("ValidateAccessToken", "body-token").
		Return(&service.Claims{UserID: user.ID, Type: "access"}, nil)
	fixture.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	called := false
	err := fixture.middleware.Authenticate(passingHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)

	// The body must still be readable by downstream handlers.
	remaining, err := io.ReadAll(c.Request().Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(remaining))
}

func TestAuthMiddleware_ExpiredVsInvalid(t *testing.T) {
	tests := []struct {
		name         string
		validateErr  error
		wantHTTPCode int
		wantCode     string
	}{
		{
			name:         "expired token is 401",
			validateErr:  service.ErrTokenExpired,
			wantHTTPCode: http.StatusUnauthorized,
			wantCode:     "ACCESS_TOKEN_EXPIRED",
		},
		{
			name:         "invalid token is 403",
			validateErr:  service.ErrTokenInvalid,
			wantHTTPCode: http.StatusForbidden,
			wantCode:     "ACCESS_TOKEN_INVALID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newAuthFixture(t)

			req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
			c := newEchoContext(req)

			fixture.tokenSvc.On("ValidateAccessToken", "some-token").
				Return(nil, tt.validateErr)

			called := false
			err := fixture.middleware.Authenticate(passingHandler(&called))(c)

			require.Error(t, err)
			assert.False(t, called)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantHTTPCode, appErr.HTTPCode())
			assert.Equal(t, tt.wantCode, appErr.ErrorCode())
		})
	}
}

func TestAuthMiddleware_SubjectGone(t *testing.T) {
	fixture := newAuthFixture(t)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	c := newEchoContext(req)

	fixture.tokenSvc.On("ValidateAccessToken", "some-token").
		Return(&service.Claims{UserID: userID, Type: "access"}, nil)
	fixture.userRepo.On("FindByID", mock.Anything, userID).
		Return(nil, repository.ErrUserNotFound)

	called := false
	err := fixture.middleware.Authenticate(passingHandler(&called))(c)

	require.Error(t, err)
	assert.False(t, called)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.Equal(t, "PRINCIPAL_NOT_FOUND", appErr.ErrorCode())
}
