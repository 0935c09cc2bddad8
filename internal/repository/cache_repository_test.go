package repository_test

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/repository"
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тесты кэша требуют живой Redis: REDIS_TEST_ADDR=localhost:6379
func newTestCache(t *testing.T) *repository.CacheRepository {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR не задан")
	}

	client, err := config.NewRedisClient(&config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return repository.NewCacheRepository(client, time.Minute)
}

func TestRefreshTokenKey(t *testing.T) {
	assert.Equal(t, "refresh_token:abc", repository.RefreshTokenKey("abc"))
}

func TestCacheRepository_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	token := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	require.NoError(t, cache.SetRefreshToken(ctx, token))

	cached, err := cache.GetRefreshToken(ctx, token.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, token.UserID, cached.UserID)
	assert.True(t, token.ExpiresAt.Equal(cached.ExpiresAt))

	require.NoError(t, cache.DeleteRefreshTokens(ctx, token.ID))

	cached, err = cache.GetRefreshToken(ctx, token.ID)
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestCacheRepository_SkipsExpired(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	token := &model.RefreshToken{ID: uuid.NewString(), UserID: "user-1", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, cache.SetRefreshToken(ctx, token))

	cached, err := cache.GetRefreshToken(ctx, token.ID)
	assert.NoError(t, err)
	assert.Nil(t, cached)
}
