// Copyright (c) 2026 Undervalued Books. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/platform/constants"
)

// RedisResetTokenRepository implements [ResetTokenRepository] using Redis.
// The TTL does the expiry work; no sweeper is needed.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a Redis-backed reset token repository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

func (repository *RedisResetTokenRepository) Set(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Set(ctx, key, strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisResetTokenRepository) Get(ctx context.Context, token string) (int64, error) {
	key := constants.RedisPrefixResetToken + token

	value, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.Unauthorized("Reset token is invalid or expired")
		}
		return 0, fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_reset_token_parse_failed: %w", err)
	}

	return userID, nil
}

func (repository *RedisResetTokenRepository) Delete(ctx context.Context, token string) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}
