package cache

import (
	"context"
	"testing"
	"time"

	"clouddoctor/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenStore(t *testing.T) (service.TokenStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewTokenStore(client), mr
}

func TestTokenStore_SaveAndGet(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1", time.Minute))

	token, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
}

func TestTokenStore_Get_Missing(t *testing.T) {
	store, _ := newTestTokenStore(t)

	_, err := store.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, service.ErrTokenNotCached)
}

func TestTokenStore_Save_OverwritesPreviousToken(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1", time.Minute))
	require.NoError(t, store.Save(ctx, "alice", "token-2", time.Minute))

	token, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
}

func TestTokenStore_EntryExpires(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "alice")
	require.ErrorIs(t, err, service.ErrTokenNotCached)
}

func TestTokenStore_Delete_IsIdempotent(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1", time.Minute))
	require.NoError(t, store.Delete(ctx, "alice"))

	_, err := store.Get(ctx, "alice")
	require.ErrorIs(t, err, service.ErrTokenNotCached)

	// Deleting again must not fail.
	require.NoError(t, store.Delete(ctx, "alice"))
}

func TestTokenStore_UsersAreIsolated(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-a", time.Minute))
	require.NoError(t, store.Save(ctx, "bob", "token-b", time.Minute))
	require.NoError(t, store.Delete(ctx, "alice"))

	token, err := store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "token-b", token)
}
