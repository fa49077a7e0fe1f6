package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, name, last_name, email, password_hash, salt, role, purchases, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return model.User{}, storeError("failed to get user by email", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.User{}, storeError("failed to get user by id", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, last_name, email, password_hash, salt, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.LastName, user.Email, user.PasswordHash, user.Salt,
		int(user.Role), user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, storeError("failed to create user", err)
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `UPDATE users SET name = $2, last_name = $3, email = $4, updated_at = $5
			  WHERE id = $1
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.LastName, user.Email, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, storeError("failed to update user", err)
	}

	return saved, nil
}

func (r *UserRepository) PushPurchases(ctx context.Context, userID uuid.UUID, purchases []model.Purchase) error {
	return pushPurchases(ctx, r.db, userID, purchases)
}

func pushPurchases(ctx context.Context, db DBTX, userID uuid.UUID, purchases []model.Purchase) error {
	data, err := encodePurchases(purchases)
	if err != nil {
		return err
	}

	query := `UPDATE users SET purchases = purchases || $2::jsonb, updated_at = now() WHERE id = $1`

	res, err := db.ExecContext(ctx, query, userID, data)
	if err != nil {
		return storeError("failed to push purchases", err)
	}
	if err := expectAffected(res); err != nil {
		return storeError("failed to push purchases", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		user      model.User
		role      int
		purchases []byte
	)

	err := row.Scan(
		&user.ID, &user.Name, &user.LastName, &user.Email, &user.PasswordHash, &user.Salt,
		&role, &purchases, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	user.Role = model.Role(role)
	user.Purchases, err = decodePurchases(purchases)
	if err != nil {
		return model.User{}, fmt.Errorf("user %s: %w", user.ID, err)
	}

	return user, nil
}
