package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymstore/internal/model"
)

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	SearchByName(ctx context.Context, query string) ([]model.Product, error)
	ListExcluding(ctx context.Context, id uuid.UUID) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID finds a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the full catalog.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("created_at").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SearchByName returns products whose name contains the query,
// case-insensitively. An empty query returns the full catalog.
func (r *productRepository) SearchByName(ctx context.Context, query string) ([]model.Product, error) {
	if query == "" {
		return r.List(ctx)
	}
	var products []model.Product
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListExcluding returns every product except the given one. Backs the
// recommendations block on the product detail page.
func (r *productRepository) ListExcluding(ctx context.Context, id uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("created_at").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
