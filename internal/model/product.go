package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// ProductStore defines persistence operations for products.
type ProductStore interface {
	Create(ctx context.Context, product Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	Update(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListVerified(ctx context.Context) ([]Product, error)
	ListUnverified(ctx context.Context) ([]Product, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Product, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

// Product is a catalog item uploaded by a user and approved by an admin.
// Price is kept in minor currency units.
type Product struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	CategoryID       uuid.UUID
	Name             string
	Description      string
	Price            int64
	Stock            int
	Sold             int
	Verified         bool
	PhotoKey         string
	PhotoContentType string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPhoto reports whether a photo object is attached to the product.
func (p Product) HasPhoto() bool {
	return p.PhotoKey != ""
}

// ProductParams contains product fields supplied by the uploader.
// On update nil fields are left unchanged.
type ProductParams struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int
	CategoryID  *uuid.UUID
}

// Photo is an uploaded product image.
type Photo struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}
