// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "clouddoctor/internal/delivery/context"
	"clouddoctor/internal/domain/entity"
	domainerrors "clouddoctor/internal/domain/errors"
	"clouddoctor/internal/domain/repository"
	"clouddoctor/internal/domain/service"
	"clouddoctor/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface. It is the session
// manager: the token store holds at most one access token per username, and
// every mint path overwrites that slot.
type authService struct {
	userRepo   repository.UserRepository
	tokenSvc   service.TokenService
	tokenStore service.TokenStore
	hasher     service.PasswordHasher
	logger     *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenSvc service.TokenService,
	tokenStore service.TokenStore,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		userRepo:   userRepo,
		tokenSvc:   tokenSvc,
		tokenStore: tokenStore,
		hasher:     hasher,
		logger:     logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credentials and establishes a fresh session. The cached
// access token is overwritten, so an earlier session for the same user stops
// validating the moment this returns.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Login attempt", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same outward error as a bad password; do not leak which one it was.
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected: password mismatch", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	output, err := srv.issueTokens(ctx, user, input.ClientSignature)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.String("username", user.Username))

	return output, nil
}

// Logout drops the cached access token for the username. Logging out a user
// with no active session is a no-op, not an error.
func (srv *authService) Logout(ctx context.Context, username string) error {
	if err := srv.tokenStore.Delete(ctx, username); err != nil {
		srv.log(ctx).Error("Failed to evict cached token", slog.Any("error", err), slog.String("username", username))

		return errors.Wrap(err, "failed to evict cached token")
	}

	srv.log(ctx).Info("Logout succeeded", slog.String("username", username))

	return nil
}

// Refresh exchanges a valid refresh token for a brand-new token pair. The
// cache slot is overwritten exactly as on login.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenOutput, error) {
	claims, err := srv.tokenSvc.ParseClaims(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Info("Refresh rejected: unparseable token", slog.Any("error", err))

		return nil, err
	}

	if claims.ExpiresAt.Before(time.Now()) {
		srv.log(ctx).Info("Refresh rejected: token expired", slog.String("username", claims.Subject))

		return nil, domainerrors.ErrTokenExpired.WrapMessage("refresh token expired")
	}

	// Re-read the user so the new access token carries current role and name.
	user, err := srv.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	output, err := srv.issueTokens(ctx, user, input.ClientSignature)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Refresh succeeded", slog.String("username", user.Username))

	return output, nil
}

// Validate checks an access token against all three session conditions: the
// token is unexpired, it is byte-identical to the cached one for its subject,
// and it was minted under the caller's client signature. Any failure along
// the way, including a cache outage, reads as invalid.
func (srv *authService) Validate(ctx context.Context, token, clientSignature string) bool {
	claims, err := srv.tokenSvc.ParseClaims(token)
	if err != nil {
		srv.log(ctx).Debug("Validation rejected: unparseable token", slog.Any("error", err))

		return false
	}

	if claims.ExpiresAt.Before(time.Now()) {
		srv.log(ctx).Debug("Validation rejected: token expired", slog.String("username", claims.Subject))

		return false
	}

	cached, err := srv.tokenStore.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotCached) {
			srv.log(ctx).Debug("Validation rejected: no active session", slog.String("username", claims.Subject))
		} else {
			srv.log(ctx).Warn("Validation failed closed: token store error", slog.Any("error", err))
		}

		return false
	}

	if cached != token {
		srv.log(ctx).Debug("Validation rejected: token superseded", slog.String("username", claims.Subject))

		return false
	}

	if claims.ClientSignature != clientSignature {
		srv.log(ctx).Info("Validation rejected: client signature mismatch", slog.String("username", claims.Subject))

		return false
	}

	return true
}

// issueTokens mints a token pair and records the access token as the single
// active one for the user. The cache TTL always matches the token's own TTL.
func (srv *authService) issueTokens(ctx context.Context, user *entity.User, clientSignature string) (*usecase.TokenOutput, error) {
	accessToken, err := srv.tokenSvc.CreateAccessToken(user, clientSignature)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create access token")
	}

	refreshToken, err := srv.tokenSvc.CreateRefreshToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token")
	}

	if err := srv.tokenStore.Save(ctx, user.Username, accessToken, srv.tokenSvc.AccessTokenTTL()); err != nil {
		srv.log(ctx).Error("Failed to cache access token", slog.Any("error", err), slog.String("username", user.Username))

		return nil, errors.Wrap(err, "failed to cache access token")
	}

	return &usecase.TokenOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
