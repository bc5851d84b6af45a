package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quizdeck/config"
	deliverycontext "quizdeck/internal/delivery/context"
	"quizdeck/internal/delivery/http/validator"
	"quizdeck/internal/domain/entity"
	"quizdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessionUsecase lets handler tests script the usecase behavior.
type stubSessionUsecase struct {
	registerFn       func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error)
	loginFn          func(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error)
	logoutFn         func(ctx context.Context, userID uuid.UUID) error
	refreshFn        func(ctx context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error)
	forgotPasswordFn func(ctx context.Context, input *usecase.ForgotPasswordInput) error
	resetPasswordFn  func(ctx context.Context, input *usecase.ResetPasswordInput) error
}

func (s *stubSessionUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return s.registerFn(ctx, input)
}

func (s *stubSessionUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubSessionUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.logoutFn(ctx, userID)
}

func (s *stubSessionUsecase) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error) {
	return s.refreshFn(ctx, input)
}

func (s *stubSessionUsecase) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	return s.forgotPasswordFn(ctx, input)
}

func (s *stubSessionUsecase) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	return s.resetPasswordFn(ctx, input)
}

func newHandlerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cookie.Domain = "example.com"
	cfg.Token.AccessTTL = 15 * time.Minute
	cfg.Token.RefreshTTL = 24 * time.Hour

	return cfg
}

func newHandlerContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)

	return nil
}

func TestUserHandler_Register_SetsCookiesAndEnvelope(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com", FullName: "Alice Example"}
	uc := &stubSessionUsecase{
		registerFn: func(_ context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "alice@example.com", input.Email)

			return &usecase.AuthOutput{
				User:         user,
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
			}, nil
		},
	}
	h := NewUserHandler(uc, newHandlerConfig(), testLogger())

	body := `{"email":"alice@example.com","fullName":"Alice Example","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newHandlerContext(req)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		StatusCode int            `json:"statusCode"`
		Success    bool           `json:"success"`
		Message    string         `json:"message"`
		Data       map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusOK, envelope.StatusCode)
	assert.True(t, envelope.Success)
	assert.Equal(t, "access-token", envelope.Data["accessToken"])
	assert.Equal(t, "refresh-token", envelope.Data["refreshToken"])

	userPayload, ok := envelope.Data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", userPayload["email"])
	assert.Equal(t, "Alice Example", userPayload["fullName"])
	assert.NotContains(t, userPayload, "PasswordHash")
	assert.NotContains(t, userPayload, "RefreshTokenHash")

	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := findCookie(t, rec, name)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, "example.com", cookie.Domain)
	}
}

func TestUserHandler_Register_RejectsInvalidInput(t *testing.T) {
	h := NewUserHandler(&stubSessionUsecase{}, newHandlerConfig(), testLogger())

	body := `{"email":"not-an-email","fullName":"","password":""}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newHandlerContext(req)

	err := h.Register(c)
	require.Error(t, err)
}

func TestUserHandler_Logout_ClearsCookies(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}
	uc := &stubSessionUsecase{
		logoutFn: func(_ context.Context, userID uuid.UUID) error {
			assert.Equal(t, user.ID, userID)

			return nil
		},
	}
	h := NewUserHandler(uc, newHandlerConfig(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	c, rec := newHandlerContext(req)
	deliverycontext.SetCurrentUser(c, user)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := findCookie(t, rec, name)
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
	}
}

func TestUserHandler_Refresh_PrefersCookieOverBody(t *testing.T) {
	uc := &stubSessionUsecase{
		refreshFn: func(_ context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "cookie-refresh", input.RefreshToken)

			return &usecase.AuthOutput{
				User:         &entity.User{ID: uuid.New()},
				AccessToken:  "new-access",
				RefreshToken: "new-refresh",
			}, nil
		},
	}
	h := NewUserHandler(uc, newHandlerConfig(), testLogger())

	body := `{"refreshToken":"body-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/refresh-token", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "cookie-refresh"})
	c, rec := newHandlerContext(req)

	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := findCookie(t, rec, "refreshToken")
	assert.Equal(t, "new-refresh", cookie.Value)
}

func TestUserHandler_ResetPassword_RejectsBadID(t *testing.T) {
	h := NewUserHandler(&stubSessionUsecase{}, newHandlerConfig(), testLogger())

	body := `{"password":"new-password"}`
	req := httptest.NewRequest(http.MethodPost, "/reset-password/not-a-uuid/some-token", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newHandlerContext(req)
	c.SetParamNames("id", "token")
	c.SetParamValues("not-a-uuid", "some-token")

	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_CurrentUser(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}
	h := NewUserHandler(&stubSessionUsecase{}, newHandlerConfig(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	c, rec := newHandlerContext(req)
	deliverycontext.SetCurrentUser(c, user)

	require.NoError(t, h.CurrentUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}
