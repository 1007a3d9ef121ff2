package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Connect dials redis and returns the list cache backed by it together with
// a function that closes the connection.
func Connect(cfg *config.RedisConfig) (*Cache, func() error, error) {
	logger.Info("Connecting list cache", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
		"ttl":  cfg.TTL.String(),
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Error("List cache unreachable", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	closeFn := func() error {
		logger.Info("Closing list cache connection", nil)
		return client.Close()
	}
	return NewCache(client, cfg.TTL), closeFn, nil
}
