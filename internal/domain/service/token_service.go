// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"time"

	"clouddoctor/internal/domain/entity"
)

// TokenClaims is the decoded claim set of a signed token. Expiry is carried
// here but not enforced by parsing; callers decide when it matters.
type TokenClaims struct {
	Subject         string    // The username the token was issued for.
	Role            string    // Role claim, access tokens only.
	FullName        string    // Display-name claim, access tokens only.
	ClientSignature string    // Opaque client binding (User-Agent), access tokens only.
	IssuedAt        time.Time // When the token was minted.
	ExpiresAt       time.Time // When the token stops being valid.
}

// TokenService creates and parses signed, expiring tokens. It never touches
// the token cache; session orchestration lives in the usecase layer.
type TokenService interface {
	// CreateAccessToken mints a short-lived access token for the user,
	// binding in the caller's opaque client signature.
	CreateAccessToken(user *entity.User, clientSignature string) (string, error)

	// CreateRefreshToken mints a longer-lived refresh token carrying only
	// the subject and expiry.
	CreateRefreshToken(user *entity.User) (string, error)

	// ParseClaims verifies the signature and decodes the claim set. It does
	// NOT check expiry. Malformed or tampered tokens yield ErrTokenInvalid.
	ParseClaims(token string) (*TokenClaims, error)

	// ExtractSubject verifies the token and returns its subject (username).
	ExtractSubject(token string) (string, error)

	// IsExpired reports whether the token's expiry claim is in the past.
	// The error is non-nil only if the token cannot be parsed at all.
	IsExpired(token string) (bool, error)

	// AccessTokenTTL returns the configured validity window for access
	// tokens. The cache entry TTL must stay in lockstep with it.
	AccessTokenTTL() time.Duration
}
