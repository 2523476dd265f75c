package service

import (
	"context"
	"fmt"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports"
	"credit-arcade/pkg/apperror"

	"github.com/shopspring/decimal"
)

const (
	defaultLedgerLimit = 20
	maxLedgerLimit     = 100
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	balances ports.BalanceStore
	ledger   ports.LedgerRepository
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(balances ports.BalanceStore, ledger ports.LedgerRepository) *AccountServiceImpl {
	return &AccountServiceImpl{balances: balances, ledger: ledger}
}

// GetBalance returns the identity's credits; unknown identities have 0.
func (s *AccountServiceImpl) GetBalance(ctx context.Context, identity string) (decimal.Decimal, error) {
	balance, err := s.balances.GetBalance(ctx, identity)
	if err != nil {
		return decimal.Zero, apperror.ErrStoreUnavailable(fmt.Errorf("get balance: %w", err))
	}
	return balance, nil
}

// ListLedger returns the most recent balance movements, newest first.
func (s *AccountServiceImpl) ListLedger(ctx context.Context, identity string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = defaultLedgerLimit
	}
	if limit > maxLedgerLimit {
		limit = maxLedgerLimit
	}

	entries, err := s.ledger.ListByIdentity(ctx, identity, limit)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("list ledger: %w", err))
	}
	return entries, nil
}
