package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"clouddoctor/internal/domain/service"
)

// accessTokenKeyPrefix namespaces the per-user access token entries.
const accessTokenKeyPrefix = "access_token:"

// redisTokenStore implements service.TokenStore on a Redis client. Redis
// expiry does the session sweeping for us: once an entry lapses, the session
// is gone without any background work.
type redisTokenStore struct {
	client *redis.Client
}

// NewTokenStore is the constructor for redisTokenStore.
func NewTokenStore(client *redis.Client) service.TokenStore {
	return &redisTokenStore{client: client}
}

func accessTokenKey(username string) string {
	return accessTokenKeyPrefix + username
}

// Save stores the user's current access token, replacing any previous one.
// The TTL matches the token's own expiry so the two clocks stay consistent.
func (s *redisTokenStore) Save(ctx context.Context, username, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, accessTokenKey(username), token, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store access token")
	}

	return nil
}

// Get returns the currently cached access token for the username.
func (s *redisTokenStore) Get(ctx context.Context, username string) (string, error) {
	token, err := s.client.Get(ctx, accessTokenKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return "", service.ErrTokenNotCached
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read access token")
	}

	return token, nil
}

// Delete removes the cached access token. Absent keys are not an error, which
// makes logout idempotent.
func (s *redisTokenStore) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, accessTokenKey(username)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete access token")
	}

	return nil
}
