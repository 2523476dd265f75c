package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"errors"

	"credit-arcade/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned by BalanceStore.Debit when the balance does not cover the amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// BalanceStore is the persisted credit balance shared with the Discord bot.
// Every change carries a unique reference; replaying a reference leaves the
// balance untouched and returns the current value.
type BalanceStore interface {
	// GetBalance returns 0 for identities without a record.
	GetBalance(ctx context.Context, identity string) (decimal.Decimal, error)
	// AddToBalance adds the signed change.Amount, creating the record if absent.
	AddToBalance(ctx context.Context, change domain.BalanceChange) (decimal.Decimal, error)
	// Debit removes the positive change.Amount only if the balance covers it.
	Debit(ctx context.Context, change domain.BalanceChange) (decimal.Decimal, error)
}

// LedgerRepository reads the balance movements recorded by BalanceStore.
type LedgerRepository interface {
	ListByIdentity(ctx context.Context, identity string, limit int) ([]domain.LedgerEntry, error)
}

// LoginCodeRepository verifies the one-time codes provisioned by the Discord bot.
type LoginCodeRepository interface {
	// Consume deletes the code if it matches and reports whether it did.
	Consume(ctx context.Context, identity, code string) (bool, error)
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
