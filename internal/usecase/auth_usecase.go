// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in. ClientSignature
// is the opaque string the delivery layer derives from the User-Agent header.
type LoginInput struct {
	Username        string
	Password        string
	ClientSignature string
}

// RefreshInput defines the data required to refresh a session.
type RefreshInput struct {
	RefreshToken    string
	ClientSignature string
}

// --- Output DTOs ---

// TokenOutput returns the freshly minted token pair.
type TokenOutput struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthUsecase is the session manager: it orchestrates login, logout, refresh
// and validation against the credential store, the token codec and the token
// cache. At most one access token is valid per username at any instant.
type AuthUsecase interface {
	// Login verifies credentials, mints a token pair and records the access
	// token in the cache, superseding any previous session for the user.
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)

	// Logout removes the cached access token for the username. Idempotent.
	Logout(ctx context.Context, username string) error

	// Refresh mints a brand-new token pair from a valid refresh token,
	// overwriting the cached access token just like login does.
	Refresh(ctx context.Context, input *RefreshInput) (*TokenOutput, error)

	// Validate reports whether the access token is the single currently
	// valid one for its subject and was issued under the caller's client
	// signature. It fails closed: any parse or lookup failure yields false.
	Validate(ctx context.Context, token, clientSignature string) bool
}
