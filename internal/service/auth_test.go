package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/password"
	"github.com/dtroode/storefront-server/internal/testutil"
	"github.com/dtroode/storefront-server/internal/token"
)

var testKDF = password.KDFParams{Time: 1, MemKiB: 1024, Par: 1}

func newTestAuth(t *testing.T, userStore model.UserStore) (*Auth, *TokenService) {
	t.Helper()
	log := testutil.MakeNoopLogger()
	tokens := NewTokenService(token.NewJWT("test-secret"), nil, time.Hour, log)
	return NewAuth(userStore, password.NewHasher(testKDF), tokens, log), tokens
}

func TestAuth_Signup_NewUser(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)

	userStore.On("GetByEmail", mock.Anything, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "a@x.com" && u.Name == "A" && u.Role == model.RoleCustomer &&
			len(u.PasswordHash) > 0 && len(u.Salt) > 0 && u.ID != uuid.Nil
	})).Return(func(_ context.Context, u model.User) (model.User, error) {
		return u, nil
	}).Once()

	a, tokens := newTestAuth(t, userStore)

	session, err := a.Signup(ctx, model.SignupParams{Name: "A", Email: "A@x.com ", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", session.User.Email)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	userID, err := tokens.Verify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, userID)
}

func TestAuth_Signup_EmailTaken(t *testing.T) {
	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "a@x.com").Return(model.User{ID: uuid.New()}, nil).Once()

	a, _ := newTestAuth(t, userStore)

	_, err := a.Signup(context.Background(), model.SignupParams{Name: "A", Email: "a@x.com", Password: "p"})
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, apierrors.KindConflict))
	assert.Contains(t, err.Error(), "Email is already in use")
	userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Signup_ConflictOnCreate(t *testing.T) {
	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()
	userStore.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrConflict).Once()

	a, _ := newTestAuth(t, userStore)

	_, err := a.Signup(context.Background(), model.SignupParams{Name: "A", Email: "a@x.com", Password: "p"})
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, apierrors.KindConflict))
}

func TestAuth_Signup_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		params model.SignupParams
	}{
		{name: "no name", params: model.SignupParams{Email: "a@x.com", Password: "p"}},
		{name: "no email", params: model.SignupParams{Name: "A", Password: "p"}},
		{name: "no password", params: model.SignupParams{Name: "A", Email: "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAuth(t, mocks.NewUserStore(t))

			_, err := a.Signup(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))
		})
	}
}

func TestAuth_Signup_StoreError(t *testing.T) {
	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "a@x.com").Return(model.User{}, assert.AnError).Once()

	a, _ := newTestAuth(t, userStore)

	_, err := a.Signup(context.Background(), model.SignupParams{Name: "A", Email: "a@x.com", Password: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	_, isAPIErr := apierrors.As(err)
	assert.False(t, isAPIErr)
}

func storedUser(t *testing.T, email, pw string) model.User {
	t.Helper()
	hash, salt, err := password.NewHasher(testKDF).Hash(pw)
	require.NoError(t, err)
	return model.User{ID: uuid.New(), Name: "A", Email: email, PasswordHash: hash, Salt: salt}
}

func TestAuth_Signin_Success(t *testing.T) {
	ctx := context.Background()
	user := storedUser(t, "a@x.com", "secret")
	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil).Once()

	a, tokens := newTestAuth(t, userStore)

	session, err := a.Signin(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
	assert.False(t, session.ExpiresAt.IsZero())

	userID, err := tokens.Verify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuth_Signin_WrongPassword(t *testing.T) {
	user := storedUser(t, "a@x.com", "secret")
	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil).Once()

	a, _ := newTestAuth(t, userStore)

	session, err := a.Signin(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)
	assert.Empty(t, session.Token)

	apiErr, ok := apierrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindAccessDenied, apiErr.Kind)
	assert.Equal(t, 401, apiErr.HTTPCode)
}

func TestAuth_Signin_UserNotRegistered(t *testing.T) {
	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "nobody@x.com").Return(model.User{}, model.ErrNotFound).Once()

	a, _ := newTestAuth(t, userStore)

	_, err := a.Signin(context.Background(), "nobody@x.com", "secret")
	require.Error(t, err)

	apiErr, ok := apierrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.HTTPCode)
}

func TestAuth_Signout(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	denylist := mocks.NewTokenDenylist(t)
	log := testutil.MakeNoopLogger()
	claims := model.TokenClaims{UserID: uuid.New(), JTI: "jti", ExpiresAt: time.Now().Add(time.Hour)}

	manager.On("Parse", "tok").Return(claims, nil).Once()
	denylist.On("Add", mock.Anything, "jti", mock.Anything).Return(nil).Once()

	a := NewAuth(mocks.NewUserStore(t), password.NewHasher(testKDF), NewTokenService(manager, denylist, time.Hour, log), log)

	require.NoError(t, a.Signout(context.Background(), "tok"))
	require.NoError(t, a.Signout(context.Background(), ""))
}
