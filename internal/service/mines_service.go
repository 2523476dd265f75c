package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports"
	"credit-arcade/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MinesServiceImpl implements ports.MinesService.
// Every mutating call holds the identity's lock for its whole duration.
type MinesServiceImpl struct {
	balances ports.BalanceStore
	games    ports.GameStore
	locker   ports.IdentityLocker
	grid     ports.GridGenerator
	log      zerolog.Logger
	now      func() time.Time
}

// NewMinesService creates a new MinesServiceImpl.
func NewMinesService(
	balances ports.BalanceStore,
	games ports.GameStore,
	locker ports.IdentityLocker,
	grid ports.GridGenerator,
	log zerolog.Logger,
) *MinesServiceImpl {
	return &MinesServiceImpl{
		balances: balances,
		games:    games,
		locker:   locker,
		grid:     grid,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start debits the bet and opens a new game. A finished game still held for
// the identity is replaced; an ongoing or settling one is not.
func (s *MinesServiceImpl) Start(ctx context.Context, identity, bet string, mineCount int) (*ports.StartResult, error) {
	amount, err := parseBet(bet)
	if err != nil {
		return nil, err
	}
	if mineCount < domain.MinMines || mineCount > domain.MaxMines {
		return nil, apperror.ErrInvalidMineCount(domain.MinMines, domain.MaxMines)
	}

	unlock, err := s.lock(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.games.Get(ctx, identity)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("load game: %w", err))
	}
	if existing != nil && (existing.IsOngoing() || existing.IsSettling()) {
		return nil, apperror.ErrGameInProgress()
	}

	gameID := uuid.New()
	balance, err := s.balances.Debit(ctx, domain.BalanceChange{
		Identity:  identity,
		Reference: domain.BuildGameReference(gameID, domain.EntryKindBet),
		Kind:      domain.EntryKindBet,
		Amount:    amount,
		GameID:    &gameID,
	})
	if err != nil {
		if errors.Is(err, ports.ErrInsufficientFunds) {
			return nil, apperror.ErrInsufficientBalance()
		}
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("debit bet: %w", err))
	}

	game, err := s.newGame(gameID, identity, amount, mineCount)
	if err != nil {
		s.refund(ctx, identity, gameID, amount)
		return nil, apperror.InternalError(err)
	}
	if err := s.games.Save(ctx, game); err != nil {
		s.refund(ctx, identity, gameID, amount)
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("save game: %w", err))
	}

	s.log.Info().
		Str("identity", identity).
		Str("game_id", gameID.String()).
		Str("bet", amount.String()).
		Int("mine_count", mineCount).
		Msg("mines game started")

	return &ports.StartResult{Game: game.Clone(), Balance: balance}, nil
}

// Reveal picks one tile of the ongoing game.
func (s *MinesServiceImpl) Reveal(ctx context.Context, identity string, tile int) (*ports.RevealResult, error) {
	unlock, err := s.lock(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer unlock()

	stored, err := s.ongoingGame(ctx, identity)
	if err != nil {
		return nil, err
	}

	game := stored.Clone()
	result, err := game.Reveal(tile, s.now())
	switch {
	case errors.Is(err, domain.ErrTileOutOfRange):
		return nil, apperror.ErrTileOutOfRange(game.GridSize)
	case errors.Is(err, domain.ErrTileAlreadyRevealed):
		return nil, apperror.ErrTileAlreadyRevealed()
	case errors.Is(err, domain.ErrGameNotOngoing):
		return nil, apperror.ErrNoActiveGame()
	case err != nil:
		return nil, apperror.InternalError(err)
	}

	if err := s.games.Save(ctx, game); err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("save game: %w", err))
	}

	s.log.Info().
		Str("identity", identity).
		Str("game_id", game.ID.String()).
		Int("tile", tile).
		Str("result", string(result)).
		Int("safe_picks", game.SafePicks).
		Msg("mines tile revealed")

	return &ports.RevealResult{Result: result, SafePicks: game.SafePicks, Game: game.Clone()}, nil
}

// Cashout credits bet * (1 + 0.2 * safePicks) and closes the game.
// The game is first saved as settling with its payout fixed, then credited,
// then saved as cashed. A failure at any step leaves a state the next Cashout
// resumes: the payout reference makes the credit apply at most once, and a
// settling game accepts no further reveals.
func (s *MinesServiceImpl) Cashout(ctx context.Context, identity string) (*ports.CashoutResult, error) {
	unlock, err := s.lock(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer unlock()

	stored, err := s.games.Get(ctx, identity)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("load game: %w", err))
	}
	if stored == nil || !(stored.IsOngoing() || stored.IsSettling()) {
		return nil, apperror.ErrNoActiveGame()
	}

	game := stored.Clone()
	if game.IsOngoing() {
		if _, err := game.BeginCashOut(s.now()); err != nil {
			return nil, apperror.ErrNoActiveGame()
		}
		if err := s.games.Save(ctx, game); err != nil {
			return nil, apperror.ErrStoreUnavailable(fmt.Errorf("save game: %w", err))
		}
	} else {
		s.log.Warn().
			Str("identity", identity).
			Str("game_id", game.ID.String()).
			Msg("resuming interrupted cashout")
	}

	balance, err := s.settle(ctx, game)
	if err != nil {
		return nil, err
	}

	if err := game.CompleteCashOut(s.now()); err != nil {
		return nil, apperror.InternalError(err)
	}
	if err := s.games.Save(ctx, game); err != nil {
		s.log.Error().Err(err).
			Str("identity", identity).
			Str("game_id", game.ID.String()).
			Msg("payout credited but game not marked cashed")
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("save game: %w", err))
	}

	s.log.Info().
		Str("identity", identity).
		Str("game_id", game.ID.String()).
		Int("safe_picks", game.SafePicks).
		Str("payout", game.Payout.String()).
		Msg("mines game cashed out")

	return &ports.CashoutResult{
		SafePicks: game.SafePicks,
		Payout:    game.Payout,
		Balance:   balance,
		Game:      game.Clone(),
	}, nil
}

// Reset discards the identity's game whatever its status. No balance changes,
// except that a settling game's payout is credited before it is discarded.
func (s *MinesServiceImpl) Reset(ctx context.Context, identity string) error {
	unlock, err := s.lock(ctx, identity)
	if err != nil {
		return err
	}
	defer unlock()

	game, err := s.games.Get(ctx, identity)
	if err != nil {
		return apperror.ErrStoreUnavailable(fmt.Errorf("load game: %w", err))
	}
	if game != nil && game.IsSettling() {
		if _, err := s.settle(ctx, game); err != nil {
			return err
		}
	}

	if err := s.games.Delete(ctx, identity); err != nil {
		return apperror.ErrStoreUnavailable(fmt.Errorf("delete game: %w", err))
	}

	s.log.Info().Str("identity", identity).Msg("mines game reset")
	return nil
}

// Current returns the identity's game in any status.
func (s *MinesServiceImpl) Current(ctx context.Context, identity string) (*domain.MinesGame, error) {
	game, err := s.games.Get(ctx, identity)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("load game: %w", err))
	}
	if game == nil {
		return nil, apperror.ErrNoActiveGame()
	}
	return game.Clone(), nil
}

func (s *MinesServiceImpl) lock(ctx context.Context, identity string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, identity)
	if errors.Is(err, ports.ErrLockHeld) {
		return nil, apperror.ErrConflict()
	}
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("acquire lock: %w", err))
	}
	return unlock, nil
}

func (s *MinesServiceImpl) ongoingGame(ctx context.Context, identity string) (*domain.MinesGame, error) {
	game, err := s.games.Get(ctx, identity)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("load game: %w", err))
	}
	if game == nil || !game.IsOngoing() {
		return nil, apperror.ErrNoActiveGame()
	}
	return game, nil
}

func (s *MinesServiceImpl) newGame(id uuid.UUID, identity string, bet decimal.Decimal, mineCount int) (*domain.MinesGame, error) {
	bombs, err := s.grid.GenerateBombs(domain.GridSize, mineCount)
	if err != nil {
		return nil, fmt.Errorf("generate bombs: %w", err)
	}
	game, err := domain.NewMinesGame(id, identity, bet, bombs, s.now())
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return game, nil
}

// settle credits the fixed payout of a settling game under its payout reference.
// Replaying the reference returns the current balance without crediting again.
func (s *MinesServiceImpl) settle(ctx context.Context, game *domain.MinesGame) (decimal.Decimal, error) {
	balance, err := s.balances.AddToBalance(ctx, domain.BalanceChange{
		Identity:  game.Identity,
		Reference: domain.BuildGameReference(game.ID, domain.EntryKindPayout),
		Kind:      domain.EntryKindPayout,
		Amount:    game.Payout,
		GameID:    &game.ID,
	})
	if err != nil {
		return decimal.Zero, apperror.ErrStoreUnavailable(fmt.Errorf("credit payout: %w", err))
	}
	return balance, nil
}

// refund returns a debited bet when the game could not be created.
func (s *MinesServiceImpl) refund(ctx context.Context, identity string, gameID uuid.UUID, amount decimal.Decimal) {
	ref := domain.BuildGameReference(gameID, domain.EntryKindRefund)
	_, err := s.balances.AddToBalance(ctx, domain.BalanceChange{
		Identity:  identity,
		Reference: ref,
		Kind:      domain.EntryKindRefund,
		Amount:    amount,
		GameID:    &gameID,
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("identity", identity).
			Str("reference", ref).
			Str("amount", amount.String()).
			Msg("bet refund failed, manual reconciliation required")
		return
	}
	s.log.Warn().Str("identity", identity).Str("reference", ref).Msg("bet refunded after failed start")
}

// maxBetLen bounds the raw bet text before it reaches the decimal parser.
const maxBetLen = 32

// parseBet accepts plain decimal notation only. Exponent forms such as
// "1e99999999" parse cheaply but expand to huge coefficients on use.
func parseBet(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxBetLen || strings.ContainsAny(raw, "eE") {
		return decimal.Zero, apperror.ErrInvalidBet()
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() || amount.GreaterThan(domain.MaxBet) {
		return decimal.Zero, apperror.ErrInvalidBet()
	}
	if !amount.Equal(amount.Truncate(domain.BetPlaces)) {
		return decimal.Zero, apperror.ErrInvalidBet()
	}
	return amount, nil
}
