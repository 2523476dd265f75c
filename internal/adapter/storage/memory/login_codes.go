package memory

import (
	"context"
	"crypto/subtle"
	"sync"
)

// LoginCodeStore implements ports.LoginCodeRepository.
type LoginCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

// NewLoginCodeStore creates an empty login code store.
func NewLoginCodeStore() *LoginCodeStore {
	return &LoginCodeStore{codes: make(map[string]string)}
}

// Put provisions a code for identity, replacing any previous one.
func (s *LoginCodeStore) Put(identity, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[identity] = code
}

// Consume removes the code if it matches.
func (s *LoginCodeStore) Consume(_ context.Context, identity, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want, ok := s.codes[identity]
	if !ok || subtle.ConstantTimeCompare([]byte(want), []byte(code)) != 1 {
		return false, nil
	}
	delete(s.codes, identity)
	return true, nil
}
