package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BalanceRepo implements ports.BalanceStore and ports.LedgerRepository.
// Balances are NUMERIC columns exchanged as text to keep decimal precision.
type BalanceRepo struct {
	pool Pool
	now  func() time.Time
}

// NewBalanceRepo creates a new BalanceRepo.
func NewBalanceRepo(pool Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

// GetBalance returns the identity's balance, or 0 if it has no record.
func (r *BalanceRepo) GetBalance(ctx context.Context, identity string) (decimal.Decimal, error) {
	balance, err := r.queryBalance(ctx, r.pool, identity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// AddToBalance applies a signed delta, creating the user row if absent.
func (r *BalanceRepo) AddToBalance(ctx context.Context, change domain.BalanceChange) (decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `INSERT INTO users (discord_id, balance, updated_at) VALUES ($1, $2::numeric, NOW())
		ON CONFLICT (discord_id) DO UPDATE SET balance = users.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance::text`

	var raw string
	if err := tx.QueryRow(ctx, query, change.Identity, change.Amount.String()).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("add to balance: %w", err)
	}

	return r.record(ctx, tx, change, change.Amount, raw)
}

// Debit removes change.Amount if the balance covers it. The check and the
// decrement are one conditional UPDATE, so concurrent debits cannot overdraw.
func (r *BalanceRepo) Debit(ctx context.Context, change domain.BalanceChange) (decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `UPDATE users SET balance = balance - $2::numeric, updated_at = NOW()
		WHERE discord_id = $1 AND balance >= $2::numeric
		RETURNING balance::text`

	var raw string
	err = tx.QueryRow(ctx, query, change.Identity, change.Amount.String()).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		applied, err := r.referenceExists(ctx, tx, change.Reference)
		if err != nil {
			return decimal.Zero, err
		}
		if !applied {
			return decimal.Zero, ports.ErrInsufficientFunds
		}
		return r.replayed(ctx, tx, change.Identity)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("debit balance: %w", err)
	}

	return r.record(ctx, tx, change, change.Amount.Neg(), raw)
}

// ListByIdentity returns the newest ledger entries first.
func (r *BalanceRepo) ListByIdentity(ctx context.Context, identity string, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT id, discord_id, reference, kind, amount::text, balance_after::text, game_id, created_at
		FROM ledger_entries WHERE discord_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, identity, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var kind, amount, balAfter string
		if err := rows.Scan(&e.ID, &e.Identity, &e.Reference, &kind, &amount, &balAfter, &e.GameID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Kind = domain.EntryKind(kind)
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		if e.BalanceAfter, err = decimal.NewFromString(balAfter); err != nil {
			return nil, fmt.Errorf("parse balance_after: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}

// record writes the ledger entry for a balance change already applied in tx.
// A reference seen before means the change was applied earlier: tx is rolled
// back and the current balance returned.
func (r *BalanceRepo) record(ctx context.Context, tx pgx.Tx, change domain.BalanceChange, signed decimal.Decimal, rawBalance string) (decimal.Decimal, error) {
	balance, err := decimal.NewFromString(rawBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance: %w", err)
	}

	query := `INSERT INTO ledger_entries (id, discord_id, reference, kind, amount, balance_after, game_id, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8)
		ON CONFLICT (reference) DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		uuid.New(), change.Identity, change.Reference, string(change.Kind),
		signed.String(), balance.String(), change.GameID, r.now(),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("insert ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.replayed(ctx, tx, change.Identity)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("commit tx: %w", err)
	}
	return balance, nil
}

func (r *BalanceRepo) replayed(ctx context.Context, tx pgx.Tx, identity string) (decimal.Decimal, error) {
	if err := tx.Rollback(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("rollback replayed change: %w", err)
	}
	balance, err := r.queryBalance(ctx, r.pool, identity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance after replay: %w", err)
	}
	return balance, nil
}

func (r *BalanceRepo) referenceExists(ctx context.Context, tx pgx.Tx, reference string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM ledger_entries WHERE reference = $1)`
	if err := tx.QueryRow(ctx, query, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("check ledger reference: %w", err)
	}
	return exists, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *BalanceRepo) queryBalance(ctx context.Context, q rowQuerier, identity string) (decimal.Decimal, error) {
	var raw string
	err := q.QueryRow(ctx, `SELECT balance::text FROM users WHERE discord_id = $1`, identity).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}
