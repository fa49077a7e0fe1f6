package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenManager signs and parses session tokens.
type TokenManager interface {
	Generate(userID uuid.UUID, ttl time.Duration) (IssuedToken, error)
	Parse(token string) (TokenClaims, error)
}

// TokenDenylist records revoked token ids until they expire.
type TokenDenylist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// IssuedToken is a freshly signed session token.
type IssuedToken struct {
	Value     string
	JTI       string
	ExpiresAt time.Time
}

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	UserID    uuid.UUID
	JTI       string
	ExpiresAt time.Time
}
