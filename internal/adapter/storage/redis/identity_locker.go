package redis

import (
	"context"
	"fmt"
	"time"

	"credit-arcade/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock re-acquired by another request is never released by us.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdentityLocker implements ports.IdentityLocker with SET NX PX.
type IdentityLocker struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewIdentityLocker creates a Redis-backed per-identity lock. ttl bounds how
// long a crashed holder can block the identity.
func NewIdentityLocker(client *goredis.Client, ttl time.Duration, log zerolog.Logger) *IdentityLocker {
	return &IdentityLocker{
		client: client,
		prefix: "mines:lock:",
		ttl:    ttl,
		log:    log,
	}
}

// Lock acquires the identity's lock or returns ports.ErrLockHeld.
func (l *IdentityLocker) Lock(ctx context.Context, identity string) (func(), error) {
	key := l.prefix + identity
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lock: %w", err)
	}
	if !ok {
		return nil, ports.ErrLockHeld
	}

	release := func() {
		// The request context may already be cancelled.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
			l.log.Warn().Err(err).Str("identity", identity).Msg("failed to release identity lock")
		}
	}
	return release, nil
}
