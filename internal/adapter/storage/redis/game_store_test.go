package redis

import (
	"context"
	"testing"
	"time"

	"credit-arcade/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, identity string) *domain.MinesGame {
	t.Helper()
	game, err := domain.NewMinesGame(uuid.New(), identity, decimal.RequireFromString("10.50"), []int{3, 7, 19}, time.Now().UTC())
	require.NoError(t, err)
	return game
}

func TestGameStore_SaveAndGet(t *testing.T) {
	_, client := newTestClient(t)
	store := NewGameStore(client, time.Hour)
	ctx := context.Background()

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, got, "missing game should return nil")

	game := newGame(t, "42")
	_, err = game.Reveal(0, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, game))

	got, err = store.Get(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, game.ID, got.ID)
	assert.True(t, game.Bet.Equal(got.Bet))
	assert.Equal(t, []int{3, 7, 19}, got.Bombs)
	assert.Equal(t, []int{0}, got.Revealed)
	assert.Equal(t, 1, got.SafePicks)
	assert.Equal(t, domain.GameStatusOngoing, got.Status)
}

func TestGameStore_KeyedByIdentity(t *testing.T) {
	s, client := newTestClient(t)
	store := NewGameStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newGame(t, "alice")))

	got, err := store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, s.Exists("mines:game:alice"))
}

func TestGameStore_TTLExpiry(t *testing.T) {
	s, client := newTestClient(t)
	store := NewGameStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newGame(t, "42")))
	s.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, got, "expired game should return nil")
}

func TestGameStore_Delete(t *testing.T) {
	_, client := newTestClient(t)
	store := NewGameStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newGame(t, "42")))
	require.NoError(t, store.Delete(ctx, "42"))

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Delete(ctx, "42"), "deleting a missing game is not an error")
}

func TestGameStore_Get_CorruptRecord(t *testing.T) {
	s, client := newTestClient(t)
	store := NewGameStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Set("mines:game:42", "{not json"))
	_, err := store.Get(ctx, "42")
	assert.ErrorContains(t, err, "decode game")

	require.NoError(t, s.Set("mines:game:42", `{"bet":"10","mine_count":3,"grid_size":25,"bombs":[1,1,2],"revealed":[],"status":"ongoing"}`))
	_, err = store.Get(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrInvalidGame)
}

func TestGameStore_Unavailable(t *testing.T) {
	s, client := newTestClient(t)
	store := NewGameStore(client, time.Hour)
	s.Close()

	_, err := store.Get(context.Background(), "42")
	assert.Error(t, err)
	assert.Error(t, store.Save(context.Background(), newGame(t, "42")))
}
