package impl

import (
	"context"
	"testing"
	"time"

	"clouddoctor/config"
	"clouddoctor/internal/domain/entity"
	domainerrors "clouddoctor/internal/domain/errors"
	"clouddoctor/internal/domain/service"
	"clouddoctor/internal/infra/auth"
	"clouddoctor/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc      usecase.AuthUsecase
	userRepo *fakeUserRepo
	store    *memTokenStore
	tokenSvc service.TokenService
	hasher   service.PasswordHasher
}

func newAuthFixture(t *testing.T, accessTTL, refreshTTL time.Duration) *authFixture {
	t.Helper()

	tokenSvc, err := auth.NewJWTService(&config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  accessTTL,
			RefreshTokenTTL: refreshTTL,
		},
	})
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})
	passwordHash, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	userRepo := newFakeUserRepo(&entity.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: passwordHash,
		Role:         entity.RoleUser,
		FullName:     "Alice Example",
		ExternalID:   "abc-123",
	})
	store := newMemTokenStore()

	return &authFixture{
		svc:      NewAuthService(userRepo, tokenSvc, store, hasher, newDiscardLogger()),
		userRepo: userRepo,
		store:    store,
		tokenSvc: tokenSvc,
		hasher:   hasher,
	}
}

func (f *authFixture) login(t *testing.T, clientSignature string) *usecase.TokenOutput {
	t.Helper()

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Username:        "alice",
		Password:        "hunter2",
		ClientSignature: clientSignature,
	})
	require.NoError(t, err)
	require.NotEmpty(t, output.AccessToken)
	require.NotEmpty(t, output.RefreshToken)

	return output
}

func TestAuthService_Login_Success(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	output := fixture.login(t, "ua-A")

	// The minted access token is the one cached for the user.
	cached, err := fixture.store.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, output.AccessToken, cached)

	// And it validates under the same client signature.
	assert.True(t, fixture.svc.Validate(context.Background(), output.AccessToken, "ua-A"))
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	_, err := fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Username:        "mallory",
		Password:        "hunter2",
		ClientSignature: "ua-A",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	_, err := fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Username:        "alice",
		Password:        "not-hunter2",
		ClientSignature: "ua-A",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_CacheFailurePropagates(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)
	fixture.store.saveErr = errors.New("redis down")

	_, err := fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Username:        "alice",
		Password:        "hunter2",
		ClientSignature: "ua-A",
	})

	require.Error(t, err)
}

func TestAuthService_Validate_ClientSignatureMismatch(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	// Token minted for ua-A must not validate when presented from ua-B.
	output := fixture.login(t, "ua-A")

	assert.True(t, fixture.svc.Validate(context.Background(), output.AccessToken, "ua-A"))
	assert.False(t, fixture.svc.Validate(context.Background(), output.AccessToken, "ua-B"))
}

func TestAuthService_SecondLoginSupersedesFirst(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)
	ctx := context.Background()

	first := fixture.login(t, "ua-A")
	// Sleep long enough for the second token's iat to differ.
	time.Sleep(1100 * time.Millisecond)
	second := fixture.login(t, "ua-A")

	require.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.False(t, fixture.svc.Validate(ctx, first.AccessToken, "ua-A"))
	assert.True(t, fixture.svc.Validate(ctx, second.AccessToken, "ua-A"))
}

func TestAuthService_Logout_InvalidatesSession(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)
	ctx := context.Background()

	output := fixture.login(t, "ua-A")
	require.True(t, fixture.svc.Validate(ctx, output.AccessToken, "ua-A"))

	require.NoError(t, fixture.svc.Logout(ctx, "alice"))
	assert.False(t, fixture.svc.Validate(ctx, output.AccessToken, "ua-A"))

	// Logout is idempotent.
	require.NoError(t, fixture.svc.Logout(ctx, "alice"))
}

func TestAuthService_Validate_ExpiredToken(t *testing.T) {
	fixture := newAuthFixture(t, -time.Minute, time.Hour)

	// A negative TTL mints an already-expired token. Login still caches it,
	// but validation must reject it on the expiry check.
	output := fixture.login(t, "ua-A")

	assert.False(t, fixture.svc.Validate(context.Background(), output.AccessToken, "ua-A"))
}

func TestAuthService_Validate_Garbage(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	assert.False(t, fixture.svc.Validate(context.Background(), "not-a-token", "ua-A"))
}

func TestAuthService_Validate_FailsClosedOnStoreError(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	output := fixture.login(t, "ua-A")
	fixture.store.getErr = errors.New("redis down")

	assert.False(t, fixture.svc.Validate(context.Background(), output.AccessToken, "ua-A"))
}

func TestAuthService_Refresh_Success(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)
	ctx := context.Background()

	first := fixture.login(t, "ua-A")
	time.Sleep(1100 * time.Millisecond)

	output, err := fixture.svc.Refresh(ctx, &usecase.RefreshInput{
		RefreshToken:    first.RefreshToken,
		ClientSignature: "ua-A",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.AccessToken, output.AccessToken)

	// The refreshed access token supersedes the original one.
	assert.True(t, fixture.svc.Validate(ctx, output.AccessToken, "ua-A"))
	assert.False(t, fixture.svc.Validate(ctx, first.AccessToken, "ua-A"))
}

func TestAuthService_Refresh_TamperedToken(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	output := fixture.login(t, "ua-A")
	tampered := output.RefreshToken[:len(output.RefreshToken)-2] + "xx"

	_, err := fixture.svc.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken:    tampered,
		ClientSignature: "ua-A",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, -time.Minute)

	output := fixture.login(t, "ua-A")

	_, err := fixture.svc.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken:    output.RefreshToken,
		ClientSignature: "ua-A",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestAuthService_Refresh_UserDeleted(t *testing.T) {
	fixture := newAuthFixture(t, 5*time.Minute, time.Hour)

	output := fixture.login(t, "ua-A")
	delete(fixture.userRepo.users, "alice")

	_, err := fixture.svc.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken:    output.RefreshToken,
		ClientSignature: "ua-A",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}
