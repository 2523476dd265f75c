package dto

import (
	"time"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Money formats a credit amount for display.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// GameView is the client-facing Mines game. Bomb positions are only
// included once the game is over.
type GameView struct {
	ID            string  `json:"game_id"`
	Bet           string  `json:"bet"`
	MineCount     int     `json:"mine_count"`
	GridSize      int     `json:"grid_size"`
	Revealed      []int   `json:"revealed"`
	Bombs         []int   `json:"bombs,omitempty"`
	Status        string  `json:"status"`
	SafePicks     int     `json:"safe_picks"`
	Multiplier    string  `json:"multiplier"`
	CurrentPayout string  `json:"current_payout"`
	Payout        *string `json:"payout,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// NewGameView builds the view of a game.
func NewGameView(g *domain.MinesGame) GameView {
	v := GameView{
		ID:            g.ID.String(),
		Bet:           Money(g.Bet),
		MineCount:     g.MineCount,
		GridSize:      g.GridSize,
		Revealed:      append([]int{}, g.Revealed...),
		Status:        string(g.Status),
		SafePicks:     g.SafePicks,
		Multiplier:    g.Multiplier().StringFixed(2),
		CurrentPayout: Money(g.CurrentPayout()),
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     g.UpdatedAt.Format(time.RFC3339),
	}
	if !g.IsOngoing() {
		v.Bombs = append([]int{}, g.Bombs...)
	}
	if g.Status == domain.GameStatusCashed || g.IsSettling() {
		p := Money(g.Payout)
		v.Payout = &p
	}
	return v
}

// StartGameResponse is returned by POST /mines/start.
type StartGameResponse struct {
	Game    GameView `json:"game"`
	Balance string   `json:"balance"`
}

// RevealResponse is returned by POST /mines/reveal.
type RevealResponse struct {
	Result    string   `json:"result"` // "safe" or "bomb"
	SafePicks int      `json:"safe_picks"`
	Game      GameView `json:"game"`
}

// CashoutResponse is returned by POST /mines/cashout.
type CashoutResponse struct {
	SafePicks int      `json:"safe_picks"`
	Payout    string   `json:"payout"`
	Balance   string   `json:"balance"`
	Game      GameView `json:"game"`
}

// NewStartGameResponse converts a service result.
func NewStartGameResponse(r *ports.StartResult) StartGameResponse {
	return StartGameResponse{Game: NewGameView(r.Game), Balance: Money(r.Balance)}
}

// NewRevealResponse converts a service result.
func NewRevealResponse(r *ports.RevealResult) RevealResponse {
	return RevealResponse{Result: string(r.Result), SafePicks: r.SafePicks, Game: NewGameView(r.Game)}
}

// NewCashoutResponse converts a service result.
func NewCashoutResponse(r *ports.CashoutResult) CashoutResponse {
	return CashoutResponse{
		SafePicks: r.SafePicks,
		Payout:    Money(r.Payout),
		Balance:   Money(r.Balance),
		Game:      NewGameView(r.Game),
	}
}

// BalanceResponse is the response for balance query.
type BalanceResponse struct {
	DiscordID string `json:"discord_id"`
	Balance   string `json:"balance"`
}

// LedgerEntryResponse is one balance movement.
type LedgerEntryResponse struct {
	ID           string  `json:"id"`
	Reference    string  `json:"reference"`
	Kind         string  `json:"kind"`
	Amount       string  `json:"amount"`
	BalanceAfter string  `json:"balance_after"`
	GameID       *string `json:"game_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// LedgerListResponse wraps the recent ledger entries.
type LedgerListResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Count   int                   `json:"count"`
}

// NewLedgerListResponse converts ledger entries.
func NewLedgerListResponse(entries []domain.LedgerEntry) LedgerListResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		r := LedgerEntryResponse{
			ID:           e.ID.String(),
			Reference:    e.Reference,
			Kind:         string(e.Kind),
			Amount:       Money(e.Amount),
			BalanceAfter: Money(e.BalanceAfter),
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		}
		if e.GameID != nil {
			id := e.GameID.String()
			r.GameID = &id
		}
		out = append(out, r)
	}
	return LedgerListResponse{Entries: out, Count: len(out)}
}
