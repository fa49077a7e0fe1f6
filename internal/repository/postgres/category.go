package postgres

import (
	"context"

	"github.com/google/uuid"

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
	query := `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)
			  RETURNING id, name, created_at`

	var saved model.Category
	err := r.db.QueryRowContext(ctx, query, category.ID, category.Name, category.CreatedAt).
		Scan(&saved.ID, &saved.Name, &saved.CreatedAt)
	if err != nil {
		return model.Category{}, storeError("failed to create category", err)
	}

	return saved, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`

	var category model.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		return model.Category{}, storeError("failed to get category by id", err)
	}

	return category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT id, name, created_at FROM categories ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("failed to list categories", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, storeError("failed to scan category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate categories", err)
	}

	return categories, nil
}
