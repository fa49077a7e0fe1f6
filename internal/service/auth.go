package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (a *Auth) Signup(ctx context.Context, params model.SignupParams) (model.Session, error) {
	email := normalizeEmail(params.Email)
	if strings.TrimSpace(params.Name) == "" || email == "" || params.Password == "" {
		return model.Session{}, apierrors.NewErrMissingFields()
	}

	a.logger.Debug("Auth service: starting user registration", "email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.Session{}, apierrors.NewErrEmailIsTaken(email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, salt, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(params.Name),
		LastName:     strings.TrimSpace(params.LastName),
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         model.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrConflict) {
		return model.Session{}, apierrors.NewErrEmailIsTaken(email)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.newSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"email", email,
		"user_id", user.ID)

	return session, nil
}

func (a *Auth) Signin(ctx context.Context, email, password string) (model.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.Session{}, apierrors.NewErrMissingFields()
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apierrors.NewErrUserNotRegistered()
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash, user.Salt) {
		a.logger.Info("Auth service: invalid credentials", "user_id", user.ID)
		return model.Session{}, apierrors.NewErrInvalidCredentials()
	}

	session, err := a.newSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user signed in", "user_id", user.ID)

	return session, nil
}

// Signout revokes the presented token. An empty token is a no-op.
func (a *Auth) Signout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.tokenService.Revoke(ctx, token)
}

func (a *Auth) newSession(ctx context.Context, user model.User) (model.Session, error) {
	issued, err := a.tokenService.Issue(ctx, user.ID, 0)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return model.Session{
		Token:     issued.Value,
		ExpiresAt: issued.ExpiresAt,
		User:      user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
