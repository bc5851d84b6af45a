// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"quizdeck/config"
	deliverycontext "quizdeck/internal/delivery/context"
	"quizdeck/internal/domain/entity"
	domainerrors "quizdeck/internal/domain/errors"
	"quizdeck/internal/domain/repository"
	"quizdeck/internal/domain/service"
	"quizdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	resetBaseURL string
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService. It receives all dependencies as interfaces.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	resetBaseURL := ""
	if params.Config != nil && params.Config.Reset != nil {
		resetBaseURL = strings.TrimRight(params.Config.Reset.BaseURL, "/")
	}

	return &sessionService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		resetBaseURL: resetBaseURL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail canonicalizes an address so lookups and the unique
// constraint agree on case.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register orchestrates the complete account registration process.
// A successful registration immediately opens a session: the caller gets a
// token pair and the refresh-token slot is filled.
func (srv *sessionService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	// All three fields must survive trimming; the binding layer's required
	// check still accepts whitespace-only values.
	if email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email, full name and password must not be blank")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashedPassword,
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		var openErr error
		output, openErr = srv.openSession(ctx, userRepo, newUser)

		return openErr
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return output, nil
}

// Login orchestrates the user login process.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	output, err := srv.openSession(ctx, srv.userRepo, user)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to open session during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return output, nil
}

// openSession issues a fresh token pair for the user and overwrites the
// refresh-token slot with the new token's hash. Any session the user held
// before is invalidated by that overwrite.
func (srv *sessionService) openSession(ctx context.Context, userRepo repository.UserRepository, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokenPair(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token pair")
	}

	refreshTokenHash := srv.tokenService.HashToken(refreshToken)
	if err := userRepo.UpdateRefreshTokenHash(ctx, user.ID, refreshTokenHash); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token hash")
	}
	user.RefreshTokenHash = refreshTokenHash

	return &usecase.AuthOutput{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout invalidates the user's session by clearing the refresh-token slot.
func (srv *sessionService) Logout(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Attempting to log out", slog.Any("userID", userID))

	if err := srv.userRepo.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		srv.log(ctx).Error("Failed to clear refresh token slot", slog.Any("error", err), slog.Any("userID", userID))

		return errors.Wrap(err, "failed to clear refresh token slot")
	}
	srv.log(ctx).Info("Successfully logged out", slog.Any("userID", userID))

	return nil
}

// Refresh rotates the session: the presented refresh token must match the
// stored slot exactly, and a successful call replaces both tokens. A token
// that was already rotated away is rejected, which surfaces token reuse.
func (srv *sessionService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Attempting to refresh session")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh rejected: token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token verification failed")
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, claims.UserID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token subject no longer exists")
			}

			return errors.Wrap(findErr, "failed to find user for refresh")
		}

		presentedHash := srv.tokenService.HashToken(input.RefreshToken)
		if user.RefreshTokenHash == "" || user.RefreshTokenHash != presentedHash {
			srv.log(ctx).Warn("Refresh rejected: token does not match stored slot", slog.Any("userID", user.ID))

			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token does not match active session")
		}

		var openErr error
		output, openErr = srv.openSession(ctx, userRepo, user)

		return openErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute refresh transaction")
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", output.User.ID))

	return output, nil
}

// ForgotPassword issues a reset token for the account and mails the reset link.
func (srv *sessionService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Password reset requested", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrEmailNotRegistered.WrapMessage("password reset requested for unknown email")
		}

		return errors.Wrap(err, "failed to find user by email for password reset")
	}

	resetToken, err := srv.tokenService.GenerateResetToken(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate reset token", slog.Any("error", err), slog.Any("userID", user.ID))

		return errors.Wrap(err, "failed to generate reset token")
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s/%s", srv.resetBaseURL, user.ID, resetToken)
	if err := srv.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		srv.log(ctx).Error("Failed to send password reset mail", slog.Any("error", err), slog.Any("userID", user.ID))

		return errors.Wrap(domainerrors.ErrMailSendFailed, "failed to send password reset mail")
	}
	srv.log(ctx).Info("Password reset mail sent", slog.Any("userID", user.ID))

	return nil
}

// ResetPassword verifies the reset token against the addressed account and
// overwrites the password hash. The token subject must be the user in the
// reset link, so a leaked token cannot reset a different account.
func (srv *sessionService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	srv.log(ctx).Info("Attempting password reset", slog.Any("userID", input.UserID))

	claims, err := srv.tokenService.ValidateResetToken(input.ResetToken)
	if err != nil {
		srv.log(ctx).Warn("Password reset rejected: token verification failed", slog.Any("error", err))

		return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token verification failed")
	}

	if claims.UserID != input.UserID {
		srv.log(ctx).Warn("Password reset rejected: token subject mismatch",
			slog.Any("userID", input.UserID), slog.Any("subject", claims.UserID))

		return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token does not belong to this account")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during reset", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during reset")
	}

	if err := srv.userRepo.UpdatePasswordHash(ctx, input.UserID, hashedPassword); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("password reset target no longer exists")
		}

		return errors.Wrap(err, "failed to update password hash")
	}
	srv.log(ctx).Info("Password reset completed", slog.Any("userID", input.UserID))

	return nil
}
