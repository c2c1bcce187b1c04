package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "gymstore/internal/errors"
	"gymstore/internal/model"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByName(ctx context.Context, query string) ([]model.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListExcluding(ctx context.Context, id uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func TestCatalogService_Get(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name          string
		id            string
		setupMock     func(*MockProductRepository)
		expectedError error
	}{
		{
			name: "existing product",
			id:   productID.String(),
			setupMock: func(m *MockProductRepository) {
				m.On("FindByID", mock.Anything, productID).Return(&model.Product{
					ID:    productID,
					Name:  "Whey Protein",
					Price: decimal.NewFromInt(25),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "missing product",
			id:   productID.String(),
			setupMock: func(m *MockProductRepository) {
				m.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProductNotFound,
		},
		{
			name:          "malformed id is absent, not a fault",
			id:            "not-a-uuid",
			setupMock:     func(m *MockProductRepository) {},
			expectedError: apperrors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			tt.setupMock(mockRepo)

			service := NewCatalogService(mockRepo, nil)
			product, err := service.Get(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, product)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, product)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_Search(t *testing.T) {
	catalog := []model.Product{
		{ID: uuid.New(), Name: "Whey Protein", Price: decimal.NewFromInt(45)},
		{ID: uuid.New(), Name: "Creatina", Price: decimal.NewFromInt(25)},
	}

	t.Run("empty query returns unfiltered list", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("List", mock.Anything).Return(catalog, nil)

		service := NewCatalogService(mockRepo, nil)
		products, err := service.Search(context.Background(), "")

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("query is delegated to name search", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("SearchByName", mock.Anything, "whey").Return(catalog[:1], nil)

		service := NewCatalogService(mockRepo, nil)
		products, err := service.Search(context.Background(), "whey")

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "Whey Protein", products[0].Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestCatalogService_Create(t *testing.T) {
	t.Run("negative price rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)

		service := NewCatalogService(mockRepo, nil)
		product, err := service.Create(context.Background(), CreateProductInput{
			Name:  "Broken",
			Price: decimal.NewFromInt(-5),
		})

		assert.Equal(t, apperrors.ErrInvalidPrice, err)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("successful creation", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewCatalogService(mockRepo, nil)
		product, err := service.Create(context.Background(), CreateProductInput{
			Name:     "Whey Protein 2kg",
			Price:    decimal.RequireFromString("45.99"),
			Category: "proteinas",
			Stock:    50,
		})

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, "Whey Protein 2kg", product.Name)
		mockRepo.AssertExpectations(t)
	})
}
