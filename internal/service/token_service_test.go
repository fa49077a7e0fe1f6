package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func TestTokenService_Issue_DefaultTTL(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	userID := uuid.New()
	issued := model.IssuedToken{Value: "tok", JTI: "jti", ExpiresAt: time.Now().Add(time.Hour)}

	manager.On("Generate", userID, time.Hour).Return(issued, nil).Once()

	s := NewTokenService(manager, nil, time.Hour, testutil.MakeNoopLogger())

	got, err := s.Issue(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Equal(t, issued, got)
}

func TestTokenService_Issue_ExplicitTTL(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	userID := uuid.New()

	manager.On("Generate", userID, 5*time.Minute).Return(model.IssuedToken{Value: "tok"}, nil).Once()

	s := NewTokenService(manager, nil, time.Hour, testutil.MakeNoopLogger())

	got, err := s.Issue(context.Background(), userID, 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Value)
}

func TestTokenService_Issue_Error(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	manager.On("Generate", mock.Anything, mock.Anything).Return(model.IssuedToken{}, assert.AnError)

	s := NewTokenService(manager, nil, time.Hour, testutil.MakeNoopLogger())

	_, err := s.Issue(context.Background(), uuid.New(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestTokenService_Verify(t *testing.T) {
	userID := uuid.New()
	claims := model.TokenClaims{UserID: userID, JTI: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name       string
		parseErr   error
		withList   bool
		revoked    bool
		listErr    error
		wantUserID uuid.UUID
		wantErr    error
	}{
		{name: "valid without denylist", wantUserID: userID},
		{name: "valid not revoked", withList: true, wantUserID: userID},
		{name: "revoked", withList: true, revoked: true, wantErr: model.ErrInvalidToken},
		{name: "parse failure", parseErr: fmt.Errorf("%w: bad", model.ErrInvalidToken), wantErr: model.ErrInvalidToken},
		{name: "denylist failure", withList: true, listErr: assert.AnError, wantErr: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := mocks.NewTokenManager(t)
			manager.On("Parse", "tok").Return(claims, tt.parseErr).Once()

			var denylist model.TokenDenylist
			if tt.withList {
				list := mocks.NewTokenDenylist(t)
				if tt.parseErr == nil {
					list.On("Contains", mock.Anything, "jti-1").Return(tt.revoked, tt.listErr).Once()
				}
				denylist = list
			}

			s := NewTokenService(manager, denylist, time.Hour, testutil.MakeNoopLogger())

			got, err := s.Verify(context.Background(), "tok")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, uuid.Nil, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUserID, got)
		})
	}
}

func TestTokenService_Revoke(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	denylist := mocks.NewTokenDenylist(t)
	claims := model.TokenClaims{UserID: uuid.New(), JTI: "jti-1", ExpiresAt: time.Now().Add(30 * time.Minute)}

	manager.On("Parse", "tok").Return(claims, nil).Once()
	denylist.On("Add", mock.Anything, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= 30*time.Minute
	})).Return(nil).Once()

	s := NewTokenService(manager, denylist, time.Hour, testutil.MakeNoopLogger())

	require.NoError(t, s.Revoke(context.Background(), "tok"))
}

func TestTokenService_Revoke_InvalidTokenIgnored(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	denylist := mocks.NewTokenDenylist(t)

	manager.On("Parse", "bad").Return(model.TokenClaims{}, fmt.Errorf("%w: malformed", model.ErrInvalidToken)).Once()

	s := NewTokenService(manager, denylist, time.Hour, testutil.MakeNoopLogger())

	require.NoError(t, s.Revoke(context.Background(), "bad"))
	denylist.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestTokenService_Revoke_NoDenylist(t *testing.T) {
	manager := mocks.NewTokenManager(t)

	s := NewTokenService(manager, nil, time.Hour, testutil.MakeNoopLogger())

	require.NoError(t, s.Revoke(context.Background(), "tok"))
	manager.AssertNotCalled(t, "Parse", mock.Anything)
}

func TestTokenService_Revoke_StoreError(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	denylist := mocks.NewTokenDenylist(t)
	claims := model.TokenClaims{UserID: uuid.New(), JTI: "jti-1", ExpiresAt: time.Now().Add(time.Minute)}

	manager.On("Parse", "tok").Return(claims, nil).Once()
	denylist.On("Add", mock.Anything, "jti-1", mock.Anything).Return(assert.AnError).Once()

	s := NewTokenService(manager, denylist, time.Hour, testutil.MakeNoopLogger())

	err := s.Revoke(context.Background(), "tok")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
