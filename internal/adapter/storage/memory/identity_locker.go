package memory

import (
	"context"
	"sync"

	"credit-arcade/internal/core/ports"
)

// IdentityLocker implements ports.IdentityLocker for a single process.
type IdentityLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewIdentityLocker creates an in-process per-identity lock.
func NewIdentityLocker() *IdentityLocker {
	return &IdentityLocker{held: make(map[string]struct{})}
}

// Lock returns ports.ErrLockHeld while another caller holds the identity.
func (l *IdentityLocker) Lock(_ context.Context, identity string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[identity]; ok {
		return nil, ports.ErrLockHeld
	}
	l.held[identity] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, identity)
			l.mu.Unlock()
		})
	}, nil
}
