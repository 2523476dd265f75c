package middleware

import (
	"net/http"
	"strings"
	"time"

	"credit-arcade/internal/core/ports"
	"credit-arcade/pkg/apperror"
	"credit-arcade/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxIdentity   = "identity"
	CtxClaims     = "token_claims"
	CtxResourceID = "resource_id"
)

// Identity returns the verified Discord ID set by JWTAuth.
func Identity(c *gin.Context) string {
	return c.GetString(CtxIdentity)
}

// Claims returns the token claims set by JWTAuth, or nil.
func Claims(c *gin.Context) *ports.TokenClaims {
	if v, ok := c.Get(CtxClaims); ok {
		if claims, ok := v.(*ports.TokenClaims); ok {
			return claims
		}
	}
	return nil
}

// JWTAuth validates the bearer token and puts the identity in the context.
// revoked may be nil when logout revocation is not configured.
func JWTAuth(tokenSvc ports.TokenService, revoked ports.TokenRevocationStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			response.Abort(c, apperror.ErrInvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(tokenStr)
		if err != nil {
			response.Abort(c, apperror.ErrInvalidToken())
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.TokenID)
			if err != nil {
				log.Error().Err(err).Msg("token revocation lookup failed")
				response.Abort(c, apperror.ErrStoreUnavailable(err))
				return
			}
			if isRevoked {
				response.Abort(c, apperror.ErrInvalidToken())
				return
			}
		}

		c.Set(CtxIdentity, claims.Identity)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		if id := Identity(c); id != "" {
			event = event.Str("identity", id)
		}

		event.
			Str("request_id", c.GetString(response.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				response.Abort(c, apperror.InternalError(nil))
			}
		}()
		c.Next()
	}
}
