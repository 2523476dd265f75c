package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credit-arcade/config"
	httpHandler "credit-arcade/internal/adapter/http/handler"
	"credit-arcade/internal/service"
	"credit-arcade/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ARC_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Backend).
		Int("port", cfg.Server.Port).
		Msg("Starting credit-arcade")

	ctx := context.Background()

	stores, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise storage")
	}
	defer stores.close()

	grid := service.NewGridGenerator()
	if cfg.Mines.Seed != 0 {
		log.Warn().Uint64("seed", cfg.Mines.Seed).Msg("Bomb layouts are seeded and predictable")
		grid = service.NewSeededGridGenerator(cfg.Mines.Seed)
	}

	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(stores.loginCodes, tokenSvc, stores.revocations, logger.Component(log, "auth"))
	accountSvc := service.NewAccountService(stores.balances, stores.ledger)
	minesSvc := service.NewMinesService(stores.balances, stores.games, stores.locker, grid, logger.Component(log, "mines"))
	auditSvc := service.NewAuditService(stores.audit, logger.Component(log, "audit"))

	deps := httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		AccountSvc:     accountSvc,
		MinesSvc:       minesSvc,
		TokenSvc:       tokenSvc,
		Revocations:    stores.revocations,
		AuditSvc:       auditSvc,
		HealthCheckers: stores.health,
		Logger:         log,
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimitStore = stores.rateLimits
	}
	router := httpHandler.SetupRouter(deps)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
