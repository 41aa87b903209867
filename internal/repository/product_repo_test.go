package repository

import (
	"context"
	"testing"
	"time"

	"inventory_tracker/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductMock(t *testing.T) (pgxmock.PgxPoolIface, ProductRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewProductRepository(mock)
}

func TestProductRepository_Create_WithoutImage(t *testing.T) {
	mock, repo := newProductMock(t)

	now := time.Now()
	price := decimal.RequireFromString("9.99")
	p := &model.Product{Name: "Widget", Price: price, CreatedAt: now}

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Widget", price, (*string)(nil), (*string)(nil), now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	err := repo.Create(context.Background(), p)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Nil(t, p.ImagePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindAll(t *testing.T) {
	mock, repo := newProductMock(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, price, description, image_path, created_at\s+FROM products ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price", "description", "image_path", "created_at"}).
			AddRow(int64(2), "Gadget", decimal.RequireFromString("19.90"), (*string)(nil), (*string)(nil), now).
			AddRow(int64(1), "Widget", decimal.RequireFromString("9.99"), (*string)(nil), (*string)(nil), now.Add(-time.Hour)))

	products, err := repo.FindAll(context.Background())

	assert.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Gadget", products[0].Name)
	assert.Equal(t, "Widget", products[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	mock, repo := newProductMock(t)

	mock.ExpectQuery(`SELECT id, name, price, description, image_path, created_at\s+FROM products WHERE id`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	p, err := repo.FindByID(context.Background(), 42)

	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_KeepsImageWhenNil(t *testing.T) {
	mock, repo := newProductMock(t)

	price := decimal.RequireFromString("12.50")
	input := model.ProductInput{Name: "Widget", Price: price}

	// Nil image path goes through COALESCE, leaving the stored value alone.
	mock.ExpectExec(`UPDATE products\s+SET name = \$1, price = \$2, description = \$3, image_path = COALESCE`).
		WithArgs("Widget", price, (*string)(nil), (*string)(nil), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	found, err := repo.Update(context.Background(), 1, input)

	assert.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_ReplacesImageWhenSet(t *testing.T) {
	mock, repo := newProductMock(t)

	price := decimal.RequireFromString("12.50")
	image := "1700000000000.png"
	input := model.ProductInput{Name: "Widget", Price: price, ImagePath: &image}

	mock.ExpectExec(`UPDATE products`).
		WithArgs("Widget", price, (*string)(nil), &image, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	found, err := repo.Update(context.Background(), 1, input)

	assert.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_MissingID(t *testing.T) {
	mock, repo := newProductMock(t)

	price := decimal.RequireFromString("12.50")
	mock.ExpectExec(`UPDATE products`).
		WithArgs("Widget", price, (*string)(nil), (*string)(nil), int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	found, err := repo.Update(context.Background(), 404, model.ProductInput{Name: "Widget", Price: price})

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
