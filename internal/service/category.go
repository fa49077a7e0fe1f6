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

type Category struct {
	categoryStore model.CategoryStore
	logger        *logger.Logger
}

func NewCategory(categoryStore model.CategoryStore, logger *logger.Logger) *Category {
	return &Category{categoryStore: categoryStore, logger: logger}
}

func (s *Category) Create(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, apierrors.NewErrMissingFields()
	}

	category, err := s.categoryStore.Create(ctx, model.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	})
	if errors.Is(err, model.ErrConflict) {
		return model.Category{}, apierrors.NewErrCategoryExists(name)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category service: category created",
		"category_id", category.ID,
		"name", category.Name)

	return category, nil
}

func (s *Category) Get(ctx context.Context, id uuid.UUID) (model.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Category{}, apierrors.NewErrCategoryNotFound()
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

func (s *Category) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}
