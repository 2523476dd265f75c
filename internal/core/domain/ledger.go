package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind represents why a balance moved.
type EntryKind string

const (
	EntryKindBet    EntryKind = "BET"
	EntryKindPayout EntryKind = "PAYOUT"
	EntryKindRefund EntryKind = "REFUND"
)

// LedgerEntry is an immutable record of one balance movement.
// Reference is unique; applying the same reference twice is a no-op.
type LedgerEntry struct {
	ID           uuid.UUID       `json:"id"`
	Identity     string          `json:"identity"`
	Reference    string          `json:"reference"`
	Kind         EntryKind       `json:"kind"`
	Amount       decimal.Decimal `json:"amount"` // signed: negative for debits
	BalanceAfter decimal.Decimal `json:"balance_after"`
	GameID       *uuid.UUID      `json:"game_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BalanceChange is a request to move an identity's balance by Amount (always positive).
type BalanceChange struct {
	Identity  string
	Reference string
	Kind      EntryKind
	Amount    decimal.Decimal
	GameID    *uuid.UUID
}

// BuildGameReference constructs the ledger reference for a game-related movement.
func BuildGameReference(gameID uuid.UUID, kind EntryKind) string {
	return "mines:" + gameID.String() + ":" + string(kind)
}
