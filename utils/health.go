package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is anything whose reachability the health monitor tracks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Upstream  bool      `json:"upstream"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every tracked dependency answered.
func (h HealthStatus) Healthy() bool {
	return h.Upstream && (h.Redis == nil || *h.Redis)
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings the upstream API and, when configured, Redis, and stores
// the snapshot.
func CheckHealth(ctx context.Context, upstream Pinger, redisClient *redis.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	status.Upstream = upstream != nil && upstream.Ping(ctx) == nil
	if redisClient != nil {
		ok := redisClient.Ping(ctx).Err() == nil
		status.Redis = &ok
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor runs CheckHealth on the given cron spec until the
// returned cron is stopped.
func StartHealthMonitor(spec string, upstream Pinger, redisClient *redis.Client) (*cron.Cron, error) {
	logger := GetLogger()
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		status := CheckHealth(context.Background(), upstream, redisClient)
		if !status.Healthy() {
			logger.Warn("health check failed", zap.Bool("upstream", status.Upstream), zap.Any("redis", status.Redis))
		}
	})
	if err != nil {
		return nil, err
	}
	go CheckHealth(context.Background(), upstream, redisClient)
	c.Start()
	return c, nil
}
