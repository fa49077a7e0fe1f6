package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	doc := newProductDoc(product)
	if _, err := r.db.collection(productsCollection).InsertOne(ctx, doc); err != nil {
		return model.Product{}, storeError("failed to create product", err)
	}

	return doc.model()
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	var doc productDoc
	if err := r.db.collection(productsCollection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return model.Product{}, storeError("failed to get product by id", err)
	}

	return doc.model()
}

// Update rewrites the uploader-editable fields. Stock counters touched by
// checkout and the verification flag are left alone.
func (r *ProductRepository) Update(ctx context.Context, product model.Product) (model.Product, error) {
	update := bson.M{"$set": bson.M{
		"category_id":        product.CategoryID.String(),
		"name":               product.Name,
		"description":        product.Description,
		"price":              product.Price,
		"stock":              product.Stock,
		"photo_key":          product.PhotoKey,
		"photo_content_type": product.PhotoContentType,
		"updated_at":         product.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDoc
	err := r.db.collection(productsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": product.ID.String()}, update, opts).
		Decode(&doc)
	if err != nil {
		return model.Product{}, storeError("failed to update product", err)
	}

	return doc.model()
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.collection(productsCollection).DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return storeError("failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) ListVerified(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, bson.M{"verified": true}, -1)
}

func (r *ProductRepository) ListUnverified(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, bson.M{"verified": false}, 1)
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID.String()}, -1)
}

func (r *ProductRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	update := bson.M{"$set": bson.M{"verified": verified, "updated_at": time.Now().UTC()}}

	res, err := r.db.collection(productsCollection).UpdateByID(ctx, id.String(), update)
	if err != nil {
		return storeError("failed to set product verification", err)
	}

	return expectMatched(res)
}

func (r *ProductRepository) list(ctx context.Context, filter bson.M, createdOrder int) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: createdOrder}})

	cur, err := r.db.collection(productsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("failed to list products", err)
	}

	return decodeAll[model.Product, productDoc](ctx, cur, "products")
}
