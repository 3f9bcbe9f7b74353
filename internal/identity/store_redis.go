// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/todoro/internal/platform/constants"
)

// RedisLoginAttemptRepository implements LoginAttemptRepository on Redis.
//
// Counters live under the "auth:login_attempts:" prefix keyed by normalized
// email and expire after the attempt window, so throttling survives process
// restarts without any cleanup job.
type RedisLoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository creates a Redis-backed login attempt counter.
func NewLoginAttemptRepository(client *redis.Client) *RedisLoginAttemptRepository {
	return &RedisLoginAttemptRepository{client: client}
}

func attemptKey(email string) string {
	return constants.RedisPrefixLoginAttempts + email
}

// Increment records a failed attempt and returns the running count.
//
// The window TTL is set only when the counter is created, so the window is
// anchored at the first failure rather than sliding with each one.
func (repository *RedisLoginAttemptRepository) Increment(ctx context.Context, email string) (int64, error) {
	key := attemptKey(email)

	count, err := repository.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}

	if count == 1 {
		if err := repository.client.Expire(ctx, key, LoginAttemptWindow).Err(); err != nil {
			return count, fmt.Errorf("redis_login_attempts_expire_failed: %w", err)
		}
	}

	return count, nil
}

// Count returns the current attempt count for the email, zero when absent.
func (repository *RedisLoginAttemptRepository) Count(ctx context.Context, email string) (int64, error) {
	count, err := repository.client.Get(ctx, attemptKey(email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}
	return count, nil
}

// Reset clears the counter after a successful login.
func (repository *RedisLoginAttemptRepository) Reset(ctx context.Context, email string) error {
	if err := repository.client.Del(ctx, attemptKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_del_failed: %w", err)
	}
	return nil
}
