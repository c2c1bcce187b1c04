package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gymstore/internal/cache"
	"gymstore/internal/errors"
	"gymstore/internal/model"
	"gymstore/internal/repository"
)

const (
	productCacheTTL = 5 * time.Minute
	catalogCacheKey = "catalog:all"
)

// CreateProductInput carries validated admin input for a new product.
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Description string
	Image       string
}

// CatalogService handles product reads and admin product creation.
type CatalogService interface {
	List(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Recommendations(ctx context.Context, excludeID string) ([]model.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*model.Product, error)
}

type catalogService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, cache *cache.Client) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: cache,
	}
}

func (s *catalogService) productCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// List returns the full catalog with caching.
func (s *catalogService) List(ctx context.Context) ([]model.Product, error) {
	if data, _ := s.cache.Get(ctx, catalogCacheKey); data != nil {
		var cached []model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if payload, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, catalogCacheKey, payload, productCacheTTL)
	}

	return products, nil
}

// Search filters the catalog by a case-insensitive substring of the name.
// An empty query is the unfiltered list.
func (s *catalogService) Search(ctx context.Context, query string) ([]model.Product, error) {
	if query == "" {
		return s.List(ctx)
	}
	products, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// Get retrieves a product by ID with caching. A malformed id is treated as
// absent rather than as a hard error.
func (s *catalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrProductNotFound
	}

	if data, _ := s.cache.Get(ctx, s.productCacheKey(productID)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.productCacheKey(productID), payload, productCacheTTL)
	}

	return product, nil
}

// Recommendations returns every product except the one being viewed.
func (s *catalogService) Recommendations(ctx context.Context, excludeID string) ([]model.Product, error) {
	productID, err := uuid.Parse(excludeID)
	if err != nil {
		return s.List(ctx)
	}
	products, err := s.repo.ListExcluding(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return products, nil
}

// Create adds a product to the catalog and invalidates the list cache.
func (s *catalogService) Create(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if input.Price.IsNegative() {
		return nil, errors.ErrInvalidPrice
	}

	product := &model.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Stock:       input.Stock,
		Description: input.Description,
		Image:       input.Image,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)

	return product, nil
}
