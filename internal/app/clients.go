package app

import (
	"fmt"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Mikayuko/projectbingsu/internal/clients/redis"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime/bus"
)

type Clients struct {
	Redis     *goredis.Client
	CodeGuard redis.CodeGuard
	EventBus  bus.Bus
}

// wireClients treats Redis as optional. Without it the API still works on a
// single instance; the redemption guard and cross-instance event fan-out just
// fall away.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) == "" {
		log.Warn("REDIS_ADDR not set, running without Redis")
		return Clients{CodeGuard: redis.NoopCodeGuard{}}, nil
	}

	rdb, err := redis.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis client: %w", err)
	}
	guard, err := redis.NewCodeGuard(log, rdb)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis code guard: %w", err)
	}
	eventBus, err := bus.NewRedisBus(log, rdb)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis event bus: %w", err)
	}

	return Clients{
		Redis:     rdb,
		CodeGuard: guard,
		EventBus:  eventBus,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.EventBus != nil {
		_ = c.EventBus.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
