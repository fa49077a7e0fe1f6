package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// TokenCookie is the cookie and header name that may carry the session token.
const TokenCookie = "token"

// TokenService resolves the user id a session token was issued to.
type TokenService interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates session tokens and injects the user id into the request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid token with 401. Failures of the
// token store surface as 500.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, err := m.authenticateUser(ctx, ExtractToken(c))
		if err != nil {
			if _, ok := apierrors.As(err); ok {
				m.logger.Debug("Authenticate middleware: request rejected",
					"path", c.FullPath(),
					"error", err.Error())
			} else {
				m.logger.Error("Authenticate middleware: failed to verify token",
					"path", c.FullPath(),
					"error", err.Error())
			}
			response.Abort(c, err)
			return
		}

		c.Request = c.Request.WithContext(m.contextManager.SetUserIDToContext(ctx, userID))
		c.Next()
	}
}

func (m *Authenticate) authenticateUser(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, apierrors.NewErrMissingAuthorizationToken()
	}

	userID, err := m.tokenService.Verify(ctx, token)
	if errors.Is(err, model.ErrInvalidToken) {
		return uuid.Nil, apierrors.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("verify token: %w", err)
	}
	if userID == uuid.Nil {
		return uuid.Nil, apierrors.NewErrInvalidAuthorizationToken()
	}

	return userID, nil
}

// ExtractToken returns the session token from the Authorization bearer header,
// the token header or the token cookie, in that order.
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token)
		}
	}

	if token := strings.TrimSpace(c.GetHeader(TokenCookie)); token != "" {
		return token
	}

	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}

	return ""
}
