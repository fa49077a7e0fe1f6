package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderStore defines persistence operations for orders.
type OrderStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	// UpdateStatus sets the status of the order only if its current status is from.
	// It returns ErrNotFound when no order matches id and from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) error
}

// CheckoutStore persists an order together with the purchase records it produces.
type CheckoutStore interface {
	PlaceOrder(ctx context.Context, order Order, purchases []Purchase) (Order, error)
}

// OrderStatus is one value of the configured closed status enumeration.
type OrderStatus string

// Order is a placed order.
type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Products      []OrderItem
	TransactionID string
	Amount        int64
	Address       string
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is a product line of an order.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Price     int64
	Quantity  int
}

// CheckoutParams contains the data submitted at checkout.
type CheckoutParams struct {
	Items         []CheckoutItem
	TransactionID string
	Amount        int64
	Address       string
}

// CheckoutItem references a product and the requested quantity.
type CheckoutItem struct {
	ProductID uuid.UUID
	Quantity  int
}
