package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

type ProductService struct {
	repo     ProductRepository
	defaults []model.Product
	logger   *zap.Logger
}

// NewProductService constructs a ProductService. defaults is the catalog
// installed by Initialize.
func NewProductService(repo ProductRepository, defaults []model.Product, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		defaults: defaults,
		logger:   logger.Named("products"),
	}
}

// List returns active products, cheapest first.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx, "")
}

// ByCategory returns active products of one category.
func (s *ProductService) ByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	if !category.Valid() {
		return nil, model.Validationf("unknown product category %q", category)
	}
	return s.repo.ListProducts(ctx, category)
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return s.repo.ProductByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, product model.Product) (model.Product, error) {
	if err := product.Validate(); err != nil {
		return model.Product{}, err
	}
	product.ID = uuid.Nil

	created, err := s.repo.InsertProduct(ctx, product)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info("product created", zap.Stringer("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, product model.Product) (model.Product, error) {
	if err := product.Validate(); err != nil {
		return model.Product{}, err
	}
	product.ID = id

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.logger.Info("product deleted", zap.Stringer("id", id))
	return nil
}

// Initialize replaces the catalog with the default products.
func (s *ProductService) Initialize(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.ResetProducts(ctx, s.defaults)
	if err != nil {
		return nil, fmt.Errorf("initialize products: %w", err)
	}
	s.logger.Info("catalog initialized", zap.Int("products", len(products)))
	return products, nil
}
