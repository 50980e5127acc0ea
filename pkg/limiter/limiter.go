package limiter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "limiter:"

const redisTimeout = 300 * time.Millisecond

// Limiter caps the number of bids a single user may place within Window.
// The counter lives in redis so every instance shares it.
type Limiter struct {
	Redis  *redis.Client
	Limit  int
	Window time.Duration
}

func (l *Limiter) Increment(ctx context.Context, userID int) (int, error) {
	key := l.userCounterKey(userID)

	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	val, err := l.Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("can't increment user's counter: %w", err)
	}

	if val == 1 {
		if err := l.Redis.Expire(ctx, key, l.Window).Err(); err != nil {
			return 0, fmt.Errorf("can't set counter expiration: %w", err)
		}
	}

	return int(val), nil
}

func (l *Limiter) LimitExceeded(ctx context.Context, userID int) (bool, error) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	c, err := l.Redis.Get(ctx, l.userCounterKey(userID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, err
	}

	return c >= l.Limit, nil
}

// userCounterKey builds the key holding the user's bid count for the current
// window: user ID concatenated with the window start timestamp.
func (l *Limiter) userCounterKey(userID int) string {
	now := time.Now().Truncate(l.Window).Unix()
	return cacheKeyPrefix + strconv.Itoa(userID) + ":" + strconv.FormatInt(now, 10)
}
