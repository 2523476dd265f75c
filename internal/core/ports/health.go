package ports

import "context"

// HealthChecker reports whether a backing store can serve the game API.
type HealthChecker interface {
	// Check returns nil when the store is reachable and usable for its role.
	Check(ctx context.Context) error
	// Name identifies the store in the /health body ("postgresql", "redis").
	Name() string
}
