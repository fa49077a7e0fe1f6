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

type User struct {
	userStore  model.UserStore
	orderStore model.OrderStore
	logger     *logger.Logger
}

func NewUser(userStore model.UserStore, orderStore model.OrderStore, logger *logger.Logger) *User {
	return &User{
		userStore:  userStore,
		orderStore: orderStore,
		logger:     logger,
	}
}

func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Update applies the non-nil fields of params to the user.
func (s *User) Update(ctx context.Context, user model.User, params model.UpdateUserParams) (model.User, error) {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return model.User{}, apierrors.NewErrValidation("name must not be empty")
		}
		user.Name = name
	}
	if params.LastName != nil {
		user.LastName = strings.TrimSpace(*params.LastName)
	}
	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		if email == "" {
			return model.User{}, apierrors.NewErrValidation("email must not be empty")
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now()

	updated, err := s.userStore.Update(ctx, user)
	if errors.Is(err, model.ErrConflict) {
		return model.User{}, apierrors.NewErrEmailIsTaken(user.Email)
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		s.logger.Error("User service: failed to update user",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated", "user_id", user.ID)

	return updated, nil
}

// PurchaseList returns the orders placed by the user.
func (s *User) PurchaseList(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by user: %w", err)
	}

	return orders, nil
}

// Publisher returns the public profile of a product uploader.
func (s *User) Publisher(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return s.Get(ctx, userID)
}
