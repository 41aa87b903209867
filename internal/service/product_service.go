package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory_tracker/internal/model"
	"inventory_tracker/internal/repository"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService defines operations for products
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, input model.ProductInput) error
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	product := &model.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImagePath:   input.ImagePath,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return product, nil
}

// Update applies the partial edit. Image handling is the repository's
// COALESCE: a nil ImagePath in input leaves the stored one untouched.
func (s *productService) Update(ctx context.Context, id int64, input model.ProductInput) error {
	found, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return fmt.Errorf("failed to update product in repo: %w", err)
	}
	if !found {
		return ErrProductNotFound
	}
	return nil
}
