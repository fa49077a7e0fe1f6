package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// TokenService issues, verifies and revokes session tokens. It composes the
// TokenManager with an optional TokenDenylist; a nil denylist disables
// server-side revocation.
type TokenService struct {
	manager  model.TokenManager
	denylist model.TokenDenylist
	ttl      time.Duration
	logger   *logger.Logger
}

func NewTokenService(manager model.TokenManager, denylist model.TokenDenylist, ttl time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, denylist: denylist, ttl: ttl, logger: logger}
}

// Issue signs a token for userID. A non-positive ttl falls back to the
// configured session TTL, so every token carries an expiry.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID, ttl time.Duration) (model.IssuedToken, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	issued, err := s.manager.Generate(userID, ttl)
	if err != nil {
		return model.IssuedToken{}, fmt.Errorf("issue token: %w", err)
	}

	return issued, nil
}

// Verify returns the user id the token was issued for.
func (s *TokenService) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		return uuid.Nil, err
	}

	if s.denylist == nil {
		return claims.UserID, nil
	}

	revoked, err := s.denylist.Contains(ctx, claims.JTI)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check token denylist: %w", err)
	}
	if revoked {
		return uuid.Nil, fmt.Errorf("%w: token revoked", model.ErrInvalidToken)
	}

	return claims.UserID, nil
}

// Revoke denylists the token until it expires. Tokens that no longer verify
// are ignored.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if s.denylist == nil {
		return nil
	}

	claims, err := s.manager.Parse(token)
	if errors.Is(err, model.ErrInvalidToken) {
		return nil
	}
	if err != nil {
		return err
	}

	remaining := time.Until(claims.ExpiresAt)
	if remaining <= 0 {
		return nil
	}

	if err := s.denylist.Add(ctx, claims.JTI, remaining); err != nil {
		s.logger.Error("Token service: failed to revoke token",
			"user_id", claims.UserID,
			"error", err.Error())
		return fmt.Errorf("revoke token: %w", err)
	}

	s.logger.Info("Token service: token revoked", "user_id", claims.UserID)

	return nil
}
