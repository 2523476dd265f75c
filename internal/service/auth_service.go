package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"credit-arcade/internal/core/ports"
	"credit-arcade/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	codes    ports.LoginCodeRepository
	tokenSvc ports.TokenService
	revoked  ports.TokenRevocationStore
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	codes ports.LoginCodeRepository,
	tokenSvc ports.TokenService,
	revoked ports.TokenRevocationStore,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		codes:    codes,
		tokenSvc: tokenSvc,
		revoked:  revoked,
		log:      log,
	}
}

// Login exchanges a one-time login code issued by the Discord bot for a session token.
// The code is consumed on success.
func (s *AuthServiceImpl) Login(ctx context.Context, identity, code string) (string, time.Time, error) {
	identity = strings.TrimSpace(identity)
	code = strings.TrimSpace(code)
	if identity == "" || code == "" {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	ok, err := s.codes.Consume(ctx, identity, code)
	if err != nil {
		return "", time.Time{}, apperror.ErrStoreUnavailable(fmt.Errorf("consume login code: %w", err))
	}
	if !ok {
		s.log.Info().Str("identity", identity).Msg("login rejected")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, claims, err := s.tokenSvc.Generate(identity)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Str("identity", identity).Str("token_id", claims.TokenID).Msg("login succeeded")
	return token, claims.ExpiresAt, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthServiceImpl) Logout(ctx context.Context, claims *ports.TokenClaims) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return apperror.ErrStoreUnavailable(fmt.Errorf("revoke token: %w", err))
	}

	s.log.Info().Str("identity", claims.Identity).Str("token_id", claims.TokenID).Msg("logout succeeded")
	return nil
}
