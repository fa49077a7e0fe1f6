package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

const productColumns = `id, owner_id, category_id, name, description, price, stock, sold, verified,
	photo_key, photo_content_type, created_at, updated_at`

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	query := `INSERT INTO products (id, owner_id, category_id, name, description, price, stock, sold, verified,
				photo_key, photo_content_type, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING ` + productColumns

	saved, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.ID, p.OwnerID, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.Sold, p.Verified,
		p.PhotoKey, p.PhotoContentType, p.CreatedAt, p.UpdatedAt,
	))
	if err != nil {
		return model.Product{}, storeError("failed to create product", err)
	}

	return saved, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Product{}, storeError("failed to get product by id", err)
	}

	return product, nil
}

func (r *ProductRepository) Update(ctx context.Context, p model.Product) (model.Product, error) {
	query := `UPDATE products SET category_id = $2, name = $3, description = $4, price = $5, stock = $6,
				photo_key = $7, photo_content_type = $8, updated_at = $9
			  WHERE id = $1
			  RETURNING ` + productColumns

	saved, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.Stock,
		p.PhotoKey, p.PhotoContentType, p.UpdatedAt,
	))
	if err != nil {
		return model.Product{}, storeError("failed to update product", err)
	}

	return saved, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return storeError("failed to delete product", err)
	}

	return expectAffected(res)
}

func (r *ProductRepository) ListVerified(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE verified = TRUE ORDER BY created_at DESC`)
}

func (r *ProductRepository) ListUnverified(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE verified = FALSE ORDER BY created_at`)
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *ProductRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET verified = $2, updated_at = now() WHERE id = $1`, id, verified)
	if err != nil {
		return storeError("failed to set product verification", err)
	}

	return expectAffected(res)
}

func (r *ProductRepository) list(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list products", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, storeError("failed to scan product", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate products", err)
	}

	return products, nil
}

// reserveStock decrements stock and increments sold for a product, failing
// with ErrConflict when not enough stock is left.
func reserveStock(ctx context.Context, db DBTX, productID uuid.UUID, quantity int) error {
	query := `UPDATE products SET stock = stock - $2, sold = sold + $2, updated_at = now()
			  WHERE id = $1 AND stock >= $2`

	res, err := db.ExecContext(ctx, query, productID, quantity)
	if err != nil {
		return storeError("failed to reserve stock", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeError("failed to reserve stock", err)
	}
	if n == 0 {
		return model.ErrConflict
	}

	return nil
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Sold, &p.Verified,
		&p.PhotoKey, &p.PhotoContentType, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}
