// Package memory provides in-process implementations of the storage ports
// for local development and tests. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceStore implements ports.BalanceStore and ports.LedgerRepository.
type BalanceStore struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	ledger   []domain.LedgerEntry
	applied  map[string]struct{}
	now      func() time.Time
}

// NewBalanceStore creates an empty in-memory balance store.
func NewBalanceStore() *BalanceStore {
	return &BalanceStore{
		balances: make(map[string]decimal.Decimal),
		applied:  make(map[string]struct{}),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetBalance overwrites a balance without writing a ledger entry. It stands in
// for the Discord bot, which owns balance provisioning.
func (s *BalanceStore) SetBalance(identity string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[identity] = amount
}

// GetBalance returns 0 for unknown identities.
func (s *BalanceStore) GetBalance(_ context.Context, identity string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[identity], nil
}

// AddToBalance applies the signed amount, creating the record if absent.
func (s *BalanceStore) AddToBalance(_ context.Context, change domain.BalanceChange) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.applied[change.Reference]; ok {
		return s.balances[change.Identity], nil
	}
	balance := s.balances[change.Identity].Add(change.Amount)
	s.apply(change, change.Amount, balance)
	return balance, nil
}

// Debit removes the amount only if the balance covers it.
func (s *BalanceStore) Debit(_ context.Context, change domain.BalanceChange) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.applied[change.Reference]; ok {
		return s.balances[change.Identity], nil
	}
	current := s.balances[change.Identity]
	if current.LessThan(change.Amount) {
		return decimal.Zero, ports.ErrInsufficientFunds
	}
	balance := current.Sub(change.Amount)
	s.apply(change, change.Amount.Neg(), balance)
	return balance, nil
}

// ListByIdentity returns the newest entries first.
func (s *BalanceStore) ListByIdentity(_ context.Context, identity string, limit int) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.LedgerEntry
	for i := len(s.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if s.ledger[i].Identity == identity {
			out = append(out, s.ledger[i])
		}
	}
	return out, nil
}

// apply must be called with mu held.
func (s *BalanceStore) apply(change domain.BalanceChange, signed, balance decimal.Decimal) {
	s.balances[change.Identity] = balance
	s.applied[change.Reference] = struct{}{}
	s.ledger = append(s.ledger, domain.LedgerEntry{
		ID:           uuid.New(),
		Identity:     change.Identity,
		Reference:    change.Reference,
		Kind:         change.Kind,
		Amount:       signed,
		BalanceAfter: balance,
		GameID:       change.GameID,
		CreatedAt:    s.now(),
	})
}
