// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"venuedesk/config"

	"github.com/go-redis/redis/v8"
)

// InitCache connects to Redis using REDIS_ADDR. With no address configured it
// returns a nil client and caching stays off.
func InitCache() (*redis.Client, error) {
	if config.AppConfig.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	return client, nil
}
