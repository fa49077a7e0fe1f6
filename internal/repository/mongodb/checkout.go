package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.CheckoutStore = (*CheckoutRepository)(nil)

// CheckoutRepository places orders without multi-document transactions.
// Each step that fails undoes the writes of the steps before it, so a failed
// checkout leaves stock, orders and purchases as they were.
type CheckoutRepository struct {
	db *Connection
}

func NewCheckoutRepository(db *Connection) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

func (r *CheckoutRepository) PlaceOrder(ctx context.Context, order model.Order, purchases []model.Purchase) (model.Order, error) {
	reserved := make([]model.OrderItem, 0, len(order.Products))
	for _, item := range order.Products {
		if err := r.reserveStock(ctx, item); err != nil {
			return model.Order{}, r.rollback(ctx, err, reserved, "")
		}
		reserved = append(reserved, item)
	}

	doc := newOrderDoc(order)
	if _, err := r.db.collection(ordersCollection).InsertOne(ctx, doc); err != nil {
		return model.Order{}, r.rollback(ctx, storeError("failed to insert order", err), reserved, "")
	}

	if err := pushPurchases(ctx, r.db, order.UserID, purchases); err != nil {
		return model.Order{}, r.rollback(ctx, err, reserved, doc.ID)
	}

	return doc.model()
}

// reserveStock moves quantity from stock to sold, failing with ErrConflict
// when not enough stock is left.
func (r *CheckoutRepository) reserveStock(ctx context.Context, item model.OrderItem) error {
	filter := bson.M{"_id": item.ProductID.String(), "stock": bson.M{"$gte": item.Quantity}}
	update := bson.M{
		"$inc": bson.M{"stock": -item.Quantity, "sold": item.Quantity},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.db.collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return storeError("failed to reserve stock", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrConflict
	}

	return nil
}

// rollback undoes the order insert and stock reservations. It runs on a
// context detached from cancellation so a cancelled request still cleans up.
func (r *CheckoutRepository) rollback(ctx context.Context, cause error, reserved []model.OrderItem, orderID string) error {
	ctx = context.WithoutCancel(ctx)
	errs := []error{cause}

	if orderID != "" {
		if _, err := r.db.collection(ordersCollection).DeleteOne(ctx, bson.M{"_id": orderID}); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove order %s: %w", orderID, err))
		}
	}

	for _, item := range reserved {
		update := bson.M{"$inc": bson.M{"stock": item.Quantity, "sold": -item.Quantity}}
		if _, err := r.db.collection(productsCollection).UpdateByID(ctx, item.ProductID.String(), update); err != nil {
			errs = append(errs, fmt.Errorf("failed to release stock of %s: %w", item.ProductID, err))
		}
	}

	return errors.Join(errs...)
}
