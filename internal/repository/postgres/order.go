package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

const orderColumns = `id, user_id, products, transaction_id, amount, address, status, created_at, updated_at`

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Order{}, storeError("failed to get order by id", err)
	}

	return order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) error {
	query := `UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, query, id, string(from), string(to))
	if err != nil {
		return storeError("failed to update order status", err)
	}

	return expectAffected(res)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list orders", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, storeError("failed to scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate orders", err)
	}

	return orders, nil
}

func insertOrder(ctx context.Context, db DBTX, order model.Order) (model.Order, error) {
	items, err := encodeOrderItems(order.Products)
	if err != nil {
		return model.Order{}, err
	}

	query := `INSERT INTO orders (id, user_id, products, transaction_id, amount, address, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + orderColumns

	saved, err := scanOrder(db.QueryRowContext(ctx, query,
		order.ID, order.UserID, items, order.TransactionID, order.Amount, order.Address,
		string(order.Status), order.CreatedAt, order.UpdatedAt,
	))
	if err != nil {
		return model.Order{}, storeError("failed to insert order", err)
	}

	return saved, nil
}

func scanOrder(row rowScanner) (model.Order, error) {
	var (
		order  model.Order
		items  []byte
		status string
	)

	err := row.Scan(
		&order.ID, &order.UserID, &items, &order.TransactionID, &order.Amount, &order.Address,
		&status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return model.Order{}, err
	}

	order.Status = model.OrderStatus(status)
	order.Products, err = decodeOrderItems(items)
	if err != nil {
		return model.Order{}, fmt.Errorf("order %s: %w", order.ID, err)
	}

	return order, nil
}
