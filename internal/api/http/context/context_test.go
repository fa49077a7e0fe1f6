package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/storefront-server/internal/model"
)

func TestManager_UserID(t *testing.T) {
	t.Parallel()

	m := NewManager()
	userID := uuid.New()

	tests := []struct {
		name   string
		ctx    context.Context
		wantID uuid.UUID
		wantOK bool
	}{
		{name: "empty context", ctx: context.Background(), wantID: uuid.Nil, wantOK: false},
		{name: "nil uuid", ctx: m.SetUserIDToContext(context.Background(), uuid.Nil), wantID: uuid.Nil, wantOK: false},
		{name: "wrong type", ctx: context.WithValue(context.Background(), userIDKey, userID.String()), wantID: uuid.Nil, wantOK: false},
		{name: "set", ctx: m.SetUserIDToContext(context.Background(), userID), wantID: userID, wantOK: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := m.GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got)
		})
	}
}

func TestManager_UserIDOverride(t *testing.T) {
	m := NewManager()
	first, second := uuid.New(), uuid.New()

	ctx := m.SetUserIDToContext(context.Background(), first)
	ctx = m.SetUserIDToContext(ctx, second)

	got, ok := m.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, second, got)
}

func TestManager_Profile(t *testing.T) {
	m := NewManager()

	_, ok := m.GetProfileFromContext(context.Background())
	assert.False(t, ok)

	_, ok = m.GetProfileFromContext(m.SetProfileToContext(context.Background(), model.User{}))
	assert.False(t, ok)

	profile := model.User{ID: uuid.New(), Email: "a@x.com", Role: model.RoleAdmin}
	ctx := m.SetProfileToContext(m.SetUserIDToContext(context.Background(), profile.ID), profile)

	got, ok := m.GetProfileFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, profile, got)

	userID, ok := m.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, profile.ID, userID)
}
