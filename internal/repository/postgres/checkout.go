package postgres

import (
	"context"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.CheckoutStore = (*CheckoutRepository)(nil)

// CheckoutRepository places orders atomically: the order row, the buyer's
// purchase records and the stock reservation commit or roll back together.
type CheckoutRepository struct {
	db *Connection
}

func NewCheckoutRepository(db *Connection) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

func (r *CheckoutRepository) PlaceOrder(ctx context.Context, order model.Order, purchases []model.Purchase) (model.Order, error) {
	var placed model.Order

	err := withTx(ctx, r.db.DB, func(ctx context.Context, tx DBTX) error {
		for _, item := range order.Products {
			if err := reserveStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		saved, err := insertOrder(ctx, tx, order)
		if err != nil {
			return err
		}

		if err := pushPurchases(ctx, tx, order.UserID, purchases); err != nil {
			return err
		}

		placed = saved
		return nil
	})
	if err != nil {
		return model.Order{}, storeError("failed to place order", err)
	}

	return placed, nil
}
