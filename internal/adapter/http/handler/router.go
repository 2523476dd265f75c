package handler

import (
	"credit-arcade/internal/adapter/http/middleware"
	"credit-arcade/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	AccountSvc     ports.AccountService
	MinesSvc       ports.MinesService
	TokenSvc       ports.TokenService
	Revocations    ports.TokenRevocationStore // nil = revoked tokens are not checked
	RateLimitStore ports.RateLimitStore       // nil = rate limiting disabled
	AuditSvc       ports.AuditService         // nil = audit logging disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 16))

	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Revocations, deps.Logger)

	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/logout", jwtAuth, rl("auth_logout"), authHandler.Logout)
	}

	accountHandler := NewAccountHandler(deps.AccountSvc)
	account := v1.Group("/account", jwtAuth, rl("account"))
	{
		account.GET("/balance", accountHandler.GetBalance)
		account.GET("/ledger", accountHandler.ListLedger)
	}

	minesHandler := NewMinesHandler(deps.MinesSvc)
	mines := v1.Group("/mines", jwtAuth, rl("mines"))
	{
		mines.GET("", minesHandler.Current)
		mines.POST("/start", rl("mines_start"), minesHandler.Start)
		mines.POST("/reveal", minesHandler.Reveal)
		mines.POST("/cashout", minesHandler.Cashout)
		mines.POST("/reset", minesHandler.Reset)
	}

	return r
}
