package main

import (
	"context"
	"fmt"

	"credit-arcade/config"
	"credit-arcade/internal/adapter/storage/memory"
	pgStorage "credit-arcade/internal/adapter/storage/postgres"
	redisStorage "credit-arcade/internal/adapter/storage/redis"
	"credit-arcade/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// backend bundles the port implementations chosen by storage.backend.
type backend struct {
	balances    ports.BalanceStore
	ledger      ports.LedgerRepository
	loginCodes  ports.LoginCodeRepository
	audit       ports.AuditRepository
	games       ports.GameStore
	locker      ports.IdentityLocker
	revocations ports.TokenRevocationStore
	rateLimits  ports.RateLimitStore
	health      []ports.HealthChecker
	close       func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	if cfg.Storage.Backend == config.BackendMemory {
		return openMemoryBackend(cfg, log)
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	balances := pgStorage.NewBalanceRepo(pool)
	return &backend{
		balances:    balances,
		ledger:      balances,
		loginCodes:  pgStorage.NewLoginCodeRepo(pool),
		audit:       pgStorage.NewAuditRepo(pool),
		games:       redisStorage.NewGameStore(rdb, cfg.Mines.SessionTTL),
		locker:      redisStorage.NewIdentityLocker(rdb, cfg.Mines.LockTTL, log),
		revocations: redisStorage.NewTokenRevocationStore(rdb),
		rateLimits:  redisStorage.NewRateLimitStore(rdb),
		health:      []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		close: func() {
			rdb.Close()
			pool.Close()
		},
	}, nil
}

func openMemoryBackend(cfg *config.Config, log zerolog.Logger) (*backend, error) {
	startBalance, err := decimal.NewFromString(cfg.Storage.DevBalance)
	if err != nil {
		return nil, fmt.Errorf("storage.dev_balance: %w", err)
	}

	balances := memory.NewBalanceStore()
	codes := memory.NewLoginCodeStore()
	for identity, code := range cfg.Storage.DevLoginCodes {
		codes.Put(identity, code)
		balances.SetBalance(identity, startBalance)
	}

	log.Warn().
		Int("dev_accounts", len(cfg.Storage.DevLoginCodes)).
		Msg("Using in-memory storage; balances and games are lost on restart")

	return &backend{
		balances:    balances,
		ledger:      balances,
		loginCodes:  codes,
		audit:       memory.NewAuditRepo(),
		games:       memory.NewGameStore(),
		locker:      memory.NewIdentityLocker(),
		revocations: memory.NewTokenRevocationStore(),
		rateLimits:  memory.NewRateLimitStore(),
		close:       func() {},
	}, nil
}
