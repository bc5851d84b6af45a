// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"quizdeck/config"
	deliverycontext "quizdeck/internal/delivery/context"
	"quizdeck/internal/delivery/http/response"
	"quizdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// UserHandler holds dependencies for account and session handlers.
type UserHandler struct {
	uc     usecase.SessionUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.SessionUsecase, cfg *config.Config, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// --- Request DTOs ---

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// --- Response DTOs ---

type authResponse struct {
	User         any    `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    input.Email,
		FullName: input.FullName,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, authResponse{
		User:         output.User,
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "User registered successfully")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, authResponse{
		User:         output.User,
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Login successful")
}

// Logout handles the user logout request. The auth middleware has already
// resolved the caller, so the handler only clears the server-side slot and
// the cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Forbidden(c, "ACCESS_TOKEN_MISSING", "Access token is missing")
	}

	if err := h.uc.Logout(c.Request().Context(), user.ID); err != nil {
		return errors.WithStack(err)
	}

	h.clearSessionCookies(c)

	return response.Success(c, http.StatusOK, map[string]string{"status": "logged out"}, "Logout successful")
}

// Refresh handles the token rotation request. The refresh token is taken
// from the refreshToken cookie when present, otherwise from the JSON body.
func (h *UserHandler) Refresh(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		refreshToken = cookie.Value
	} else {
		var input refreshRequest
		if err := c.Bind(&input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "REFRESH_TOKEN_INVALID", "Refresh token is missing")
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: refreshToken})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, authResponse{
		User:         output.User,
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Token refreshed successfully")
}

// CurrentUser returns the authenticated user attached by the auth middleware.
func (h *UserHandler) CurrentUser(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Forbidden(c, "ACCESS_TOKEN_MISSING", "Access token is missing")
	}

	return response.Success(c, http.StatusOK, user, "Current user retrieved successfully")
}

// ForgotPassword handles the password reset request and mails the reset link.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var input forgotPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot-password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), &usecase.ForgotPasswordInput{Email: input.Email}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"Status": "Success"}, "Password reset mail sent")
}

// ResetPassword handles the password reset confirmation from the mailed link.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "RESET_TOKEN_INVALID", "Invalid reset link")
	}

	var input resetPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset-password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		UserID:     userID,
		ResetToken: c.Param("token"),
		Password:   input.Password,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"Status": "Success"}, "Password reset successful")
}

// setSessionCookies sets both token cookies with the cross-site attributes
// the browser clients rely on.
func (h *UserHandler) setSessionCookies(c echo.Context, accessToken, refreshToken string) {
	h.setTokenCookie(c, accessTokenCookie, accessToken, h.cfg.Token.AccessTTL)
	h.setTokenCookie(c, refreshTokenCookie, refreshToken, h.cfg.Token.RefreshTTL)
}

// clearSessionCookies expires both token cookies.
func (h *UserHandler) clearSessionCookies(c echo.Context) {
	h.setTokenCookie(c, accessTokenCookie, "", -time.Hour)
	h.setTokenCookie(c, refreshTokenCookie, "", -time.Hour)
}

func (h *UserHandler) setTokenCookie(c echo.Context, name, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cfg.Cookie.Domain,
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	}

	c.SetCookie(cookie)
}
