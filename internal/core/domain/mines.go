package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// GridSize is the number of tiles on a Mines board (5x5).
	GridSize = 25
	// MinMines and MaxMines bound the mine count of a game.
	MinMines = 1
	MaxMines = GridSize - 1
	// BetPlaces is the number of decimal places a bet may carry.
	BetPlaces = 2
)

var (
	// multiplierStep is added to the payout multiplier for every safe pick.
	multiplierStep = decimal.RequireFromString("0.2")
	// MaxBet caps a single bet.
	MaxBet = decimal.NewFromInt(1_000_000)
)

// GameStatus represents the lifecycle state of a Mines game.
type GameStatus string

const (
	GameStatusOngoing GameStatus = "ongoing"
	GameStatusLost    GameStatus = "lost"
	// GameStatusSettling is a cashed-out game whose payout credit is not yet
	// confirmed. Payout is fixed; only completing the cashout moves it on.
	GameStatusSettling GameStatus = "settling"
	GameStatusCashed   GameStatus = "cashed"
)

// RevealResult is the outcome of revealing one tile.
type RevealResult string

const (
	RevealSafe RevealResult = "safe"
	RevealBomb RevealResult = "bomb"
)

var (
	ErrGameNotOngoing      = errors.New("game is not ongoing")
	ErrGameNotSettling     = errors.New("game is not settling")
	ErrTileOutOfRange      = errors.New("tile out of range")
	ErrTileAlreadyRevealed = errors.New("tile already revealed")
	ErrInvalidGame         = errors.New("invalid game record")
)

// MinesGame is the per-identity game record.
// Bombs must never leave the server while the game is ongoing.
type MinesGame struct {
	ID        uuid.UUID       `json:"id"`
	Identity  string          `json:"identity"`
	Bet       decimal.Decimal `json:"bet"`
	MineCount int             `json:"mine_count"`
	GridSize  int             `json:"grid_size"`
	Bombs     []int           `json:"bombs"`
	Revealed  []int           `json:"revealed"`
	Status    GameStatus      `json:"status"`
	SafePicks int             `json:"safe_picks"`
	Payout    decimal.Decimal `json:"payout"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewMinesGame creates an ongoing game with no tiles revealed.
func NewMinesGame(id uuid.UUID, identity string, bet decimal.Decimal, bombs []int, now time.Time) (*MinesGame, error) {
	g := &MinesGame{
		ID:        id,
		Identity:  identity,
		Bet:       bet,
		MineCount: len(bombs),
		GridSize:  GridSize,
		Bombs:     slices.Clone(bombs),
		Revealed:  []int{},
		Status:    GameStatusOngoing,
		Payout:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// IsOngoing returns true while tiles may still be revealed.
func (g *MinesGame) IsOngoing() bool {
	return g.Status == GameStatusOngoing
}

// IsSettling returns true between the start of a cashout and its confirmed credit.
func (g *MinesGame) IsSettling() bool {
	return g.Status == GameStatusSettling
}

// IsBomb reports whether tile holds a bomb.
func (g *MinesGame) IsBomb(tile int) bool {
	return slices.Contains(g.Bombs, tile)
}

// IsRevealed reports whether tile has already been picked.
func (g *MinesGame) IsRevealed(tile int) bool {
	return slices.Contains(g.Revealed, tile)
}

// Reveal picks a tile. A bomb ends the game as lost.
func (g *MinesGame) Reveal(tile int, now time.Time) (RevealResult, error) {
	if !g.IsOngoing() {
		return "", ErrGameNotOngoing
	}
	if tile < 0 || tile >= g.GridSize {
		return "", ErrTileOutOfRange
	}
	if g.IsRevealed(tile) {
		return "", ErrTileAlreadyRevealed
	}

	g.Revealed = append(g.Revealed, tile)
	g.UpdatedAt = now

	if g.IsBomb(tile) {
		g.Status = GameStatusLost
		return RevealBomb, nil
	}
	g.SafePicks++
	return RevealSafe, nil
}

// Multiplier is 1 + 0.2 per safe pick, independent of the mine count.
func (g *MinesGame) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(multiplierStep.Mul(decimal.NewFromInt(int64(g.SafePicks))))
}

// CurrentPayout is what a cashout would credit right now.
func (g *MinesGame) CurrentPayout() decimal.Decimal {
	return g.Bet.Mul(g.Multiplier())
}

// BeginCashOut fixes the payout and moves the game to settling. The caller
// persists that state, credits the returned payout, then calls CompleteCashOut.
func (g *MinesGame) BeginCashOut(now time.Time) (decimal.Decimal, error) {
	if !g.IsOngoing() {
		return decimal.Zero, ErrGameNotOngoing
	}
	g.Payout = g.CurrentPayout()
	g.Status = GameStatusSettling
	g.UpdatedAt = now
	return g.Payout, nil
}

// CompleteCashOut marks a settling game as cashed once its payout is credited.
func (g *MinesGame) CompleteCashOut(now time.Time) error {
	if !g.IsSettling() {
		return ErrGameNotSettling
	}
	g.Status = GameStatusCashed
	g.UpdatedAt = now
	return nil
}

// CashOut runs BeginCashOut and CompleteCashOut in one step.
func (g *MinesGame) CashOut(now time.Time) (decimal.Decimal, error) {
	payout, err := g.BeginCashOut(now)
	if err != nil {
		return decimal.Zero, err
	}
	return payout, g.CompleteCashOut(now)
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (g *MinesGame) Clone() *MinesGame {
	c := *g
	c.Bombs = slices.Clone(g.Bombs)
	c.Revealed = slices.Clone(g.Revealed)
	if c.Revealed == nil {
		c.Revealed = []int{}
	}
	return &c
}

// Validate checks the structural invariants of a game record.
func (g *MinesGame) Validate() error {
	if !g.Bet.IsPositive() {
		return fmt.Errorf("%w: bet must be positive", ErrInvalidGame)
	}
	if g.GridSize != GridSize {
		return fmt.Errorf("%w: grid size %d", ErrInvalidGame, g.GridSize)
	}
	if g.MineCount < MinMines || g.MineCount > MaxMines || len(g.Bombs) != g.MineCount {
		return fmt.Errorf("%w: %d bombs for mine count %d", ErrInvalidGame, len(g.Bombs), g.MineCount)
	}
	if err := distinctInRange(g.Bombs, g.GridSize); err != nil {
		return fmt.Errorf("%w: bombs %v", ErrInvalidGame, err)
	}
	if err := distinctInRange(g.Revealed, g.GridSize); err != nil {
		return fmt.Errorf("%w: revealed %v", ErrInvalidGame, err)
	}

	safe, bombsHit := 0, 0
	for _, tile := range g.Revealed {
		if g.IsBomb(tile) {
			bombsHit++
		} else {
			safe++
		}
	}
	if safe != g.SafePicks {
		return fmt.Errorf("%w: safe picks %d, counted %d", ErrInvalidGame, g.SafePicks, safe)
	}

	switch g.Status {
	case GameStatusOngoing:
		if bombsHit != 0 {
			return fmt.Errorf("%w: %s game has a revealed bomb", ErrInvalidGame, g.Status)
		}
	case GameStatusSettling, GameStatusCashed:
		if bombsHit != 0 {
			return fmt.Errorf("%w: %s game has a revealed bomb", ErrInvalidGame, g.Status)
		}
		if !g.Payout.Equal(g.CurrentPayout()) {
			return fmt.Errorf("%w: payout %s does not match %d safe picks", ErrInvalidGame, g.Payout, g.SafePicks)
		}
	case GameStatusLost:
		if bombsHit != 1 || !g.IsBomb(g.Revealed[len(g.Revealed)-1]) {
			return fmt.Errorf("%w: lost game must end on its only revealed bomb", ErrInvalidGame)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidGame, g.Status)
	}
	return nil
}

func distinctInRange(tiles []int, size int) error {
	seen := make(map[int]struct{}, len(tiles))
	for _, t := range tiles {
		if t < 0 || t >= size {
			return fmt.Errorf("tile %d outside [0,%d)", t, size)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("tile %d repeated", t)
		}
		seen[t] = struct{}{}
	}
	return nil
}
