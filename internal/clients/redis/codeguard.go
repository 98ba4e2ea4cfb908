package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
)

// CodeGuard serializes redemption attempts for one menu code across API
// instances. It only narrows the race window; the conditional UPDATE on the
// menu_code row stays authoritative.
type CodeGuard interface {
	Acquire(ctx context.Context, code string) (bool, error)
	Release(ctx context.Context, code string)
}

type codeGuard struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCodeGuard(log *logger.Logger, rdb *goredis.Client) (CodeGuard, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &codeGuard{
		log: log.With("service", "RedisCodeGuard"),
		rdb: rdb,
		ttl: 30 * time.Second,
	}, nil
}

func (g *codeGuard) key(code string) string {
	return "bingsu:redeem:" + code
}

func (g *codeGuard) Acquire(ctx context.Context, code string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, g.key(code), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redeem lock acquire: %w", err)
	}
	return ok, nil
}

func (g *codeGuard) Release(ctx context.Context, code string) {
	if err := g.rdb.Del(ctx, g.key(code)).Err(); err != nil {
		// TTL reclaims the lock if the delete is lost.
		g.log.Warn("redeem lock release failed", "error", err)
	}
}

// NoopCodeGuard is used when Redis is not configured; redemption then relies
// on the database guard alone.
type NoopCodeGuard struct{}

func (NoopCodeGuard) Acquire(ctx context.Context, code string) (bool, error) { return true, nil }
func (NoopCodeGuard) Release(ctx context.Context, code string)               {}
