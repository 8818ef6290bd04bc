package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/NGOKrooz/SPIN-sub000/config"
	pkgerrors "github.com/NGOKrooz/SPIN-sub000/pkg/errors"
)

// Client wraps the Redis connection.
// Used for request rate limiting and the per-intern advance lease; callers
// must tolerate a nil Client and degrade.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── rate limiting ──

// CheckRateLimit implements a sliding window over a sorted set.
// Returns true when the request is allowed.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return countCmd.Val() < int64(limit), nil
}

// ── advance lease ──

const advanceLockPrefix = "advance:lock:"

// AcquireAdvanceLock takes a short lease serializing auto-advance for one
// intern. The returned token must be passed back to ReleaseAdvanceLock.
// ok=false means another request holds the lease.
func (c *Client) AcquireAdvanceLock(ctx context.Context, internID string, ttl time.Duration) (token string, ok bool, err error) {
	token = uuid.New().String()
	ok, err = c.rdb.SetNX(ctx, advanceLockPrefix+internID, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// releaseScript deletes the lease only when the token still matches, so an
// expired lease taken over by another request is never released by us.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseAdvanceLock returns the lease. ErrConflict means the lease
// expired and another request took it over in the meantime.
func (c *Client) ReleaseAdvanceLock(ctx context.Context, internID, token string) error {
	n, err := releaseScript.Run(ctx, c.rdb, []string{advanceLockPrefix + internID}, token).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return pkgerrors.ErrConflict
	}
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
