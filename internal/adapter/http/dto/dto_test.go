package dto

import (
	"encoding/json"
	"testing"
	"time"

	"credit-arcade/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want Amount
	}{
		{`{"bet": 10}`, "10"},
		{`{"bet": 10.5}`, "10.5"},
		{`{"bet": "10.50"}`, "10.50"},
		{`{"bet": "abc"}`, "abc"},
		{`{"bet": null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req StartGameRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Bet)
		})
	}
}

func TestStartGameRequest_ZeroMineCountIsPresent(t *testing.T) {
	var req StartGameRequest
	require.NoError(t, json.Unmarshal([]byte(`{"bet":1,"mine_count":0}`), &req))
	require.NotNil(t, req.MineCount)
	assert.Equal(t, 0, *req.MineCount)
}

func newTestGame(t *testing.T) *domain.MinesGame {
	t.Helper()
	g, err := domain.NewMinesGame(uuid.New(), "42", decimal.NewFromInt(10), []int{2, 5, 9}, time.Now())
	require.NoError(t, err)
	return g
}

func TestNewGameView_HidesBombsWhileOngoing(t *testing.T) {
	g := newTestGame(t)
	_, err := g.Reveal(0, time.Now())
	require.NoError(t, err)

	v := NewGameView(g)
	assert.Nil(t, v.Bombs)
	assert.Equal(t, "ongoing", v.Status)
	assert.Equal(t, "10.00", v.Bet)
	assert.Equal(t, "1.20", v.Multiplier)
	assert.Equal(t, "12.00", v.CurrentPayout)
	assert.Nil(t, v.Payout)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bombs")
}

func TestNewGameView_DisclosesBombsWhenLost(t *testing.T) {
	g := newTestGame(t)
	_, err := g.Reveal(5, time.Now())
	require.NoError(t, err)

	v := NewGameView(g)
	assert.Equal(t, []int{2, 5, 9}, v.Bombs)
	assert.Equal(t, "lost", v.Status)
}

func TestNewGameView_CashedShowsPayout(t *testing.T) {
	g := newTestGame(t)
	_, _ = g.Reveal(0, time.Now())
	_, _ = g.Reveal(1, time.Now())
	_, err := g.CashOut(time.Now())
	require.NoError(t, err)

	v := NewGameView(g)
	require.NotNil(t, v.Payout)
	assert.Equal(t, "14.00", *v.Payout)
	assert.Len(t, v.Bombs, 3)
}

func TestNewGameView_SettlingShowsPayout(t *testing.T) {
	g := newTestGame(t)
	_, _ = g.Reveal(0, time.Now())
	_, err := g.BeginCashOut(time.Now())
	require.NoError(t, err)

	v := NewGameView(g)
	assert.Equal(t, "settling", v.Status)
	require.NotNil(t, v.Payout)
	assert.Equal(t, "12.00", *v.Payout)
}

func TestNewLedgerListResponse(t *testing.T) {
	gameID := uuid.New()
	resp := NewLedgerListResponse([]domain.LedgerEntry{
		{ID: uuid.New(), Kind: domain.EntryKindBet, Amount: decimal.NewFromInt(-10), BalanceAfter: decimal.NewFromInt(90), GameID: &gameID},
		{ID: uuid.New(), Kind: domain.EntryKindPayout, Amount: decimal.RequireFromString("12.5"), BalanceAfter: decimal.RequireFromString("102.5")},
	})

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "-10.00", resp.Entries[0].Amount)
	assert.Equal(t, gameID.String(), *resp.Entries[0].GameID)
	assert.Equal(t, "12.50", resp.Entries[1].Amount)
	assert.Nil(t, resp.Entries[1].GameID)

	empty := NewLedgerListResponse(nil)
	assert.NotNil(t, empty.Entries)
	assert.Zero(t, empty.Count)
}
