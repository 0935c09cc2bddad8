package repository

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
	now    func() time.Time
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{client: rdb, ttl: ttl, now: time.Now}
}

// SetRefreshToken кладет запись в кэш не дольше, чем живет сам токен
func (r *CacheRepository) SetRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	ttl := r.ttl
	if left := token.ExpiresAt.Sub(r.now()); left < ttl {
		ttl = left
	}
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return util.LogError("[CacheRepo] ошибка сериализации токена", err)
	}

	cmd := r.client.Client.Set(ctx, RefreshTokenKey(token.ID), data, ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("[CacheRepo] ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetRefreshToken(ctx context.Context, id string) (*model.RefreshToken, error) {
	val, err := r.client.Client.Get(ctx, RefreshTokenKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("[CacheRepo] ошибка получения токена из Redis", err)
	}

	var token model.RefreshToken
	if err := json.Unmarshal([]byte(val), &token); err != nil {
		return nil, util.LogError("[CacheRepo] ошибка десериализации токена из кэша", err)
	}
	return &token, nil
}

func (r *CacheRepository) DeleteRefreshTokens(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, RefreshTokenKey(id))
	}

	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		return util.LogError("[CacheRepo] ошибка удаления токенов из Redis", err)
	}
	return nil
}

func RefreshTokenKey(id string) string {
	return fmt.Sprintf("refresh_token:%s", id)
}
