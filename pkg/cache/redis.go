package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

func NewRedis(addr, user, password string) (*redis.Client, func() error, error) {
	if !strings.Contains(addr, ":") {
		addr = addr + ":6379"
	}

	opts := &redis.Options{
		Addr:     addr,
		Username: user,
		Password: password,
	}

	r := redis.NewClient(opts)

	// fail fast at startup: the limiter, the price cache and the rollup
	// publisher all assume a reachable redis
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, nil, err
	}

	return r, r.Close, nil
}
