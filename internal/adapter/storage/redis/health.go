package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	healthKey = "mines:health"
	healthTTL = 30 * time.Second
)

// HealthCheck implements ports.HealthChecker for Redis.
type HealthCheck struct {
	client *goredis.Client
}

// NewHealthCheck creates a Redis health checker.
func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

// Check writes a short-lived key next to the game records. A read-only
// replica or a full noeviction instance answers PING but cannot hold games.
func (h *HealthCheck) Check(ctx context.Context) error {
	if err := h.client.Set(ctx, healthKey, time.Now().Unix(), healthTTL).Err(); err != nil {
		return fmt.Errorf("write %s: %w", healthKey, err)
	}
	return nil
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "redis"
}
