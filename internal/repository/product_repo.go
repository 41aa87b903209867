package repository

import (
	"context"
	"errors"
	"fmt"

	"inventory_tracker/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for product data
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, id int64, input model.ProductInput) (bool, error)
}

type productRepository struct {
	db Querier
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db Querier) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (name, price, description, image_path, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, p.Name, p.Price, p.Description, p.ImagePath, p.CreatedAt).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindAll retrieves every product, newest first
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	sql := `SELECT id, name, price, description, image_path, created_at
            FROM products ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImagePath, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT id, name, price, description, image_path, created_at
            FROM products WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImagePath, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// Update applies a partial update in a single statement. A nil ImagePath
// keeps the stored image (COALESCE), so an edit without a new upload never
// clears it. Returns false when the id does not exist.
func (r *productRepository) Update(ctx context.Context, id int64, input model.ProductInput) (bool, error) {
	sql := `UPDATE products
            SET name = $1, price = $2, description = $3, image_path = COALESCE($4, image_path)
            WHERE id = $5`
	cmdTag, err := r.db.Exec(ctx, sql, input.Name, input.Price, input.Description, input.ImagePath, id)
	if err != nil {
		return false, fmt.Errorf("failed to update product: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
