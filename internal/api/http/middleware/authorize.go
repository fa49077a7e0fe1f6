package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/model"
)

// Authorize holds the access checks that run after Authenticate and ResolveProfile.
type Authorize struct {
	contextManager model.ContextManager
}

func NewAuthorize(contextManager model.ContextManager) *Authorize {
	return &Authorize{contextManager: contextManager}
}

// IsAuthenticated passes only when the token owner is the user named by the route.
func (m *Authorize) IsAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, ok := m.contextManager.GetUserIDFromContext(ctx)
		if !ok {
			response.Abort(c, apierrors.NewErrAccessDenied())
			return
		}
		profile, ok := m.contextManager.GetProfileFromContext(ctx)
		if !ok || profile.ID != userID {
			response.Abort(c, apierrors.NewErrAccessDenied())
			return
		}

		c.Next()
	}
}

// IsAdmin passes only when the resolved profile has admin rights.
func (m *Authorize) IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := m.contextManager.GetProfileFromContext(c.Request.Context())
		if !ok {
			response.Abort(c, apierrors.NewErrAccessDenied())
			return
		}
		if !profile.Role.IsAdmin() {
			response.Abort(c, apierrors.NewErrNotAdmin())
			return
		}

		c.Next()
	}
}
