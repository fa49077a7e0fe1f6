package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	profileKey
)

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the authenticated user id and the resolved route profile in
// request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a copy of ctx carrying the authenticated user id.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the authenticated user id. The nil uuid is
// reported as absent.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// SetProfileToContext returns a copy of ctx carrying the user addressed by the route.
func (m *Manager) SetProfileToContext(ctx context.Context, profile model.User) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

func (m *Manager) GetProfileFromContext(ctx context.Context) (model.User, bool) {
	profile, ok := ctx.Value(profileKey).(model.User)
	if !ok || profile.ID == uuid.Nil {
		return model.User{}, false
	}
	return profile, true
}
