package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CategoryStore defines persistence operations for product categories.
type CategoryStore interface {
	Create(ctx context.Context, category Category) (Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	List(ctx context.Context) ([]Category, error)
}

// Category groups products in the catalog.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
