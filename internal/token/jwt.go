package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: []byte(secretKey), now: time.Now}
}

var _ model.TokenManager = (*JWT)(nil)

var errNoTTL = errors.New("token ttl must be positive")

// Generate signs a token for userID that expires after ttl.
func (j *JWT) Generate(userID uuid.UUID, ttl time.Duration) (model.IssuedToken, error) {
	if ttl <= 0 {
		return model.IssuedToken{}, errNoTTL
	}

	now := j.now()
	expiresAt := now.Add(ttl)
	jti := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return model.IssuedToken{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return model.IssuedToken{
		Value:     tokenString,
		JTI:       jti,
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

// Parse validates the token signature and expiry and returns its claims.
// Tokens without an expiry claim are rejected.
func (j *JWT) Parse(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return model.TokenClaims{}, fmt.Errorf("%w: missing user id", model.ErrInvalidToken)
	}

	return model.TokenClaims{
		UserID:    claims.UserID,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
