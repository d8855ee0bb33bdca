package service

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotCached is returned by TokenStore.Get when no access token is
// currently cached for the username. Callers treat it as "no active session".
var ErrTokenNotCached = errors.New("no cached access token for user")

// TokenStore records the single currently-valid access token per username.
// Entries self-expire; the store needs no sweeping. The concrete
// implementation is an external cache (Redis), but tests substitute an
// in-memory fake.
type TokenStore interface {
	// Save stores the access token for the username, overwriting any
	// previous value, with the given time-to-live.
	Save(ctx context.Context, username, token string, ttl time.Duration) error

	// Get returns the currently cached access token for the username, or
	// ErrTokenNotCached if the entry is absent or already expired.
	Get(ctx context.Context, username string) (string, error)

	// Delete removes the cached token. Deleting an absent key is not an error.
	Delete(ctx context.Context, username string) error
}
