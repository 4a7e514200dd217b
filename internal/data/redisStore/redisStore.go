package redisStore

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var (
	instances = make(map[int]*Store)
	mu        sync.RWMutex
	logger    = logger_i.NewLogger("redisStore")
	once      sync.Once
)

type Store struct {
	client *redis.Client
	Type   int
}

// GetRedisStore hands out one shared client per redis database index.
func GetRedisStore(ctx context.Context, dbType int) *Store {
	mu.RLock()
	instance, exists := instances[dbType]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[dbType]; exists {
		return instance
	}
	return createNewStore(ctx, dbType)
}

func createNewStore(ctx context.Context, dbType int) *Store {
	newClient := redis.NewClient(&redis.Options{
		Addr:                  config.RedisAddr,
		Password:              config.RedisPassword,
		DB:                    dbType,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "db", dbType, "error", err.Error())
		return nil
	}

	logger.Info("Redis store ready", "db", dbType)

	newStore := &Store{
		client: newClient,
		Type:   dbType,
	}

	instances[dbType] = newStore
	once.Do(func() {
		go closeRedisStores(ctx)
	})
	return newStore
}

func closeRedisStores(ctx context.Context) {
	<-ctx.Done()
	logger.Info("Closing Redis stores")
	mu.Lock()
	defer mu.Unlock()
	for _, store := range instances {
		if err := store.client.Close(); err != nil {
			logger.Error("Error closing redis client", "error", err)
		}
	}
}

// NewTestStore wraps an externally constructed client, for tests only.
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
