package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	var doc orderDoc
	if err := r.db.collection(ordersCollection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return model.Order{}, storeError("failed to get order by id", err)
	}

	return doc.model()
}

func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID.String()})
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) error {
	filter := bson.M{"_id": id.String(), "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC()}}

	res, err := r.db.collection(ordersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return storeError("failed to update order status", err)
	}

	return expectMatched(res)
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.db.collection(ordersCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("failed to list orders", err)
	}

	return decodeAll[model.Order, orderDoc](ctx, cur, "orders")
}
