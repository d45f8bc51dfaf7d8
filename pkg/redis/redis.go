package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hinterbergers/mycliniq-sub000/config"
)

// Client wraps the Redis connection.
// Used for request rate limiting and the per-period roster run lock.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and performs a ping health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── rate limiting ──

// CheckRateLimit counts a request against a fixed window and reports whether
// it is still within the limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── per-period roster run lock ──

const runLockPrefix = "roster:run-lock:"

// AcquireRunLock takes the advisory lock for one planning period.
// Returns false when another run for the same period is in flight.
func (c *Client) AcquireRunLock(ctx context.Context, year, month int, token string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("%s%04d-%02d", runLockPrefix, year, month)
	return c.rdb.SetNX(ctx, key, token, ttl).Result()
}

// ReleaseRunLock releases the advisory lock if it is still held by token.
func (c *Client) ReleaseRunLock(ctx context.Context, year, month int, token string) error {
	key := fmt.Sprintf("%s%04d-%02d", runLockPrefix, year, month)

	// release only our own lock; an expired lock may have been re-acquired
	const script = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`
	return c.rdb.Eval(ctx, script, []string{key}, token).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
