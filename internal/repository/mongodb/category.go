package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.CategoryStore = (*CategoryRepository)(nil)

type CategoryRepository struct {
	db *Connection
}

func NewCategoryRepository(db *Connection) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category model.Category) (model.Category, error) {
	doc := categoryDoc{ID: category.ID.String(), Name: category.Name, CreatedAt: category.CreatedAt}
	if _, err := r.db.collection(categoriesCollection).InsertOne(ctx, doc); err != nil {
		return model.Category{}, storeError("failed to create category", err)
	}

	return category, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	var doc categoryDoc
	if err := r.db.collection(categoriesCollection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return model.Category{}, storeError("failed to get category by id", err)
	}

	return doc.model()
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := r.db.collection(categoriesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("failed to list categories", err)
	}

	return decodeAll[model.Category, categoryDoc](ctx, cur, "categories")
}
