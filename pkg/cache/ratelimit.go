package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const commentRateLimitKey = "comment_rate_limit:%s"

// RateLimiter 固定窗口计数限流
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf(commentRateLimitKey, key)
	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, errors.Wrap(err, "rate limit")
	}
	// 窗口内第一次计数时设置过期时间
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, errors.Wrap(err, "rate limit expire")
		}
	}
	return count <= r.limit, nil
}
