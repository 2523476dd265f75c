package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func change(identity string, kind domain.EntryKind, amount string) domain.BalanceChange {
	id := uuid.New()
	return domain.BalanceChange{
		Identity:  identity,
		Reference: domain.BuildGameReference(id, kind),
		Kind:      kind,
		Amount:    dec(amount),
		GameID:    &id,
	}
}

func TestBalanceStore_UnknownIdentityIsZero(t *testing.T) {
	store := NewBalanceStore()
	got, err := store.GetBalance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestBalanceStore_AddCreatesRecord(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	got, err := store.AddToBalance(ctx, change("42", domain.EntryKindPayout, "12.5"))
	require.NoError(t, err)
	assert.True(t, dec("12.5").Equal(got))

	bal, _ := store.GetBalance(ctx, "42")
	assert.True(t, dec("12.5").Equal(bal))
}

func TestBalanceStore_Debit(t *testing.T) {
	store := NewBalanceStore()
	store.SetBalance("42", dec("100"))
	ctx := context.Background()

	got, err := store.Debit(ctx, change("42", domain.EntryKindBet, "100"))
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "debiting the whole balance is allowed")

	_, err = store.Debit(ctx, change("42", domain.EntryKindBet, "0.01"))
	assert.ErrorIs(t, err, ports.ErrInsufficientFunds)
}

func TestBalanceStore_ReplayedReferenceIsNoop(t *testing.T) {
	store := NewBalanceStore()
	store.SetBalance("42", dec("100"))
	ctx := context.Background()

	bet := change("42", domain.EntryKindBet, "10")
	_, err := store.Debit(ctx, bet)
	require.NoError(t, err)
	got, err := store.Debit(ctx, bet)
	require.NoError(t, err)
	assert.True(t, dec("90").Equal(got))

	payout := change("42", domain.EntryKindPayout, "12")
	_, err = store.AddToBalance(ctx, payout)
	require.NoError(t, err)
	got, err = store.AddToBalance(ctx, payout)
	require.NoError(t, err)
	assert.True(t, dec("102").Equal(got))

	entries, err := store.ListByIdentity(ctx, "42", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBalanceStore_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	store := NewBalanceStore()
	store.SetBalance("42", dec("50"))
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Debit(ctx, change("42", domain.EntryKindBet, "10")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	bal, _ := store.GetBalance(ctx, "42")
	assert.True(t, bal.IsZero())
}

func TestBalanceStore_ListByIdentity(t *testing.T) {
	store := NewBalanceStore()
	store.SetBalance("42", dec("100"))
	ctx := context.Background()

	_, _ = store.Debit(ctx, change("42", domain.EntryKindBet, "10"))
	_, _ = store.AddToBalance(ctx, change("43", domain.EntryKindPayout, "5"))
	_, _ = store.AddToBalance(ctx, change("42", domain.EntryKindPayout, "12"))

	entries, err := store.ListByIdentity(ctx, "42", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EntryKindPayout, entries[0].Kind)
	assert.True(t, dec("102").Equal(entries[0].BalanceAfter))
	assert.Equal(t, domain.EntryKindBet, entries[1].Kind)
	assert.True(t, dec("-10").Equal(entries[1].Amount))

	entries, err = store.ListByIdentity(ctx, "42", 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGameStore_ClonesOnSaveAndGet(t *testing.T) {
	store := NewGameStore()
	ctx := context.Background()

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, got)

	game, err := domain.NewMinesGame(uuid.New(), "42", dec("10"), []int{1, 2, 3}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, game))

	game.Revealed = append(game.Revealed, 9)
	got, err = store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, got.Revealed, "caller mutation must not reach the store")

	got.Revealed = append(got.Revealed, 9)
	again, _ := store.Get(ctx, "42")
	assert.Empty(t, again.Revealed)

	require.NoError(t, store.Delete(ctx, "42"))
	got, _ = store.Get(ctx, "42")
	assert.Nil(t, got)
}

func TestIdentityLocker(t *testing.T) {
	locker := NewIdentityLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "42")
	require.NoError(t, err)

	_, err = locker.Lock(ctx, "42")
	assert.ErrorIs(t, err, ports.ErrLockHeld)

	other, err := locker.Lock(ctx, "43")
	require.NoError(t, err)
	other()

	unlock()
	unlock()

	unlock, err = locker.Lock(ctx, "42")
	require.NoError(t, err)
	unlock()
}

func TestLoginCodeStore_OneTimeUse(t *testing.T) {
	store := NewLoginCodeStore()
	store.Put("42", "ABC123")
	ctx := context.Background()

	ok, err := store.Consume(ctx, "42", "WRONG")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Consume(ctx, "43", "ABC123")
	require.NoError(t, err)
	assert.False(t, ok, "code belongs to another identity")

	ok, err = store.Consume(ctx, "42", "ABC123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "42", "ABC123")
	require.NoError(t, err)
	assert.False(t, ok, "code is consumed on success")
}

func TestTokenRevocationStore(t *testing.T) {
	store := NewTokenRevocationStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, store.Revoke(ctx, "jti-old", 0))

	revoked, _ := store.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "jti-old")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = store.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}

func TestRateLimitStore(t *testing.T) {
	store := NewRateLimitStore()
	now := time.Unix(1_700_000_040, 0)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := int64(1); i <= 2; i++ {
		res, err := store.Allow(ctx, "42", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, _ := store.Allow(ctx, "42", 2, time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, now.Unix()/60*60+60, res.ResetAt)

	now = now.Add(time.Minute)
	res, _ = store.Allow(ctx, "42", 2, time.Minute)
	assert.True(t, res.Allowed)
}

func TestAuditRepo(t *testing.T) {
	repo := NewAuditRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.AuditLog{ID: uuid.New(), Action: domain.AuditActionLogin}))

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionLogin, entries[0].Action)
}
