package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// UserParam is the route parameter naming the user a route group acts on.
const UserParam = "userId"

// UserService loads user profiles.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
}

// ResolveProfile loads the user named by the :userId route parameter.
type ResolveProfile struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewResolveProfile(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *ResolveProfile {
	return &ResolveProfile{userService: userService, contextManager: contextManager, logger: logger}
}

func (m *ResolveProfile) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(UserParam)
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Abort(c, apierrors.NewErrInvalidID(UserParam, raw))
			return
		}

		ctx := c.Request.Context()
		profile, err := m.userService.Get(ctx, id)
		if err != nil {
			if !apierrors.IsKind(err, apierrors.KindNotFound) {
				m.logger.Error("Profile middleware: failed to load user",
					"user_id", id.String(),
					"error", err.Error())
			}
			response.Abort(c, err)
			return
		}

		c.Request = c.Request.WithContext(m.contextManager.SetProfileToContext(ctx, profile))
		c.Next()
	}
}
