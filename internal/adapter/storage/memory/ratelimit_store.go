package memory

import (
	"context"
	"sync"
	"time"

	"credit-arcade/internal/core/ports"
)

type window struct {
	id    int64
	count int64
}

// RateLimitStore implements ports.RateLimitStore with fixed windows.
type RateLimitStore struct {
	mu      sync.Mutex
	windows map[string]window
	now     func() time.Time
}

// NewRateLimitStore creates an in-memory rate limit store.
func NewRateLimitStore() *RateLimitStore {
	return &RateLimitStore{
		windows: make(map[string]window),
		now:     time.Now,
	}
}

func (s *RateLimitStore) Allow(_ context.Context, key string, limit int64, length time.Duration) (*ports.RateLimitResult, error) {
	secs := int64(length / time.Second)
	if secs < 1 {
		secs = 1
	}
	id := s.now().Unix() / secs

	s.mu.Lock()
	w := s.windows[key]
	if w.id != id {
		w = window{id: id}
	}
	w.count++
	s.windows[key] = w
	s.mu.Unlock()

	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return &ports.RateLimitResult{
		Allowed:   w.count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (id + 1) * secs,
	}, nil
}
