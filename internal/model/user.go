package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	PushPurchases(ctx context.Context, userID uuid.UUID, purchases []Purchase) error
}

// Role enumerates user privileges.
type Role int

const (
	// RoleCustomer is the default, unprivileged role.
	RoleCustomer Role = 0
	// RoleAdmin may approve products and manage orders.
	RoleAdmin Role = 1
)

// IsAdmin reports whether the role grants admin access.
// Any value other than RoleCustomer is treated as admin.
func (r Role) IsAdmin() bool {
	return r != RoleCustomer
}

// Valid reports whether the role is one of the declared values.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Name         string
	LastName     string
	Email        string
	PasswordHash []byte
	Salt         []byte
	Role         Role
	Purchases    []Purchase
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Purchase is a snapshot of a purchased product appended to the user at checkout.
type Purchase struct {
	ProductID     uuid.UUID
	Name          string
	Description   string
	CategoryID    uuid.UUID
	Quantity      int
	Amount        int64
	TransactionID string
}

// SignupParams contains the data required to register a user.
type SignupParams struct {
	Name     string
	LastName string
	Email    string
	Password string
}

// UpdateUserParams contains optional profile fields; nil fields are left unchanged.
type UpdateUserParams struct {
	Name     *string
	LastName *string
	Email    *string
}

// Session is the result of a successful signup or signin.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
