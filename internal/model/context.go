package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores request-scoped identity in a context.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
	SetProfileToContext(ctx context.Context, profile User) context.Context
	GetProfileFromContext(ctx context.Context) (User, bool)
}
