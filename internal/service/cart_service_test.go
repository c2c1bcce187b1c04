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

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ItemsForUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartRepository) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithCartClear(ctx context.Context, order *model.Order, userID uuid.UUID) error {
	args := m.Called(ctx, order, userID)
	return args.Error(0)
}

func TestCartService_AddItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name          string
		quantity      int
		setupMock     func(*MockCartRepository)
		expectedError error
	}{
		{
			name:     "valid quantity upserts into the cart",
			quantity: 2,
			setupMock: func(m *MockCartRepository) {
				m.On("AddOrIncrement", mock.Anything, userID, productID, 2).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "zero quantity rejected",
			quantity:      0,
			setupMock:     func(m *MockCartRepository) {},
			expectedError: apperrors.ErrInvalidQuantity,
		},
		{
			name:          "negative quantity rejected",
			quantity:      -3,
			setupMock:     func(m *MockCartRepository) {},
			expectedError: apperrors.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCart := new(MockCartRepository)
			tt.setupMock(mockCart)

			service := NewCartService(mockCart, new(MockProductRepository), new(MockOrderRepository))
			err := service.AddItem(context.Background(), userID, productID, tt.quantity)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				mockCart.AssertNotCalled(t, "AddOrIncrement")
			} else {
				assert.NoError(t, err)
			}
			mockCart.AssertExpectations(t)
		})
	}
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	mockCart := new(MockCartRepository)
	// The delete succeeds whether or not a matching line exists.
	mockCart.On("Remove", mock.Anything, userID, productID).Return(nil).Twice()

	service := NewCartService(mockCart, new(MockProductRepository), new(MockOrderRepository))

	assert.NoError(t, service.RemoveItem(context.Background(), userID, productID))
	assert.NoError(t, service.RemoveItem(context.Background(), userID, productID))
	mockCart.AssertExpectations(t)
}

func TestCartService_View(t *testing.T) {
	userID := uuid.New()
	productA := model.Product{ID: uuid.New(), Name: "Whey Protein", Price: decimal.NewFromInt(25)}
	productB := model.Product{ID: uuid.New(), Name: "Creatina", Price: decimal.NewFromInt(15)}
	orphanID := uuid.New()

	mockCart := new(MockCartRepository)
	mockCart.On("ItemsForUser", mock.Anything, userID).Return([]model.CartItem{
		{UserID: userID, ProductID: productA.ID, Quantity: 2},
		{UserID: userID, ProductID: orphanID, Quantity: 5},
		{UserID: userID, ProductID: productB.ID, Quantity: 1},
	}, nil)

	mockProducts := new(MockProductRepository)
	mockProducts.On("FindByID", mock.Anything, productA.ID).Return(&productA, nil)
	mockProducts.On("FindByID", mock.Anything, orphanID).Return(nil, gorm.ErrRecordNotFound)
	mockProducts.On("FindByID", mock.Anything, productB.ID).Return(&productB, nil)

	service := NewCartService(mockCart, mockProducts, new(MockOrderRepository))
	view, err := service.View(context.Background(), userID)

	assert.NoError(t, err)
	// The orphaned line is invisible: not an item, not part of the total.
	assert.Len(t, view.Items, 2)
	assert.True(t, view.Items[0].Subtotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, view.Items[1].Subtotal.Equal(decimal.NewFromInt(15)))
	assert.True(t, view.Total.Equal(decimal.NewFromInt(65)))

	// Total always equals the sum of the returned subtotals.
	sum := decimal.Zero
	for _, item := range view.Items {
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, view.Total.Equal(sum))

	mockCart.AssertExpectations(t)
	mockProducts.AssertExpectations(t)
}

func TestCartService_Checkout(t *testing.T) {
	userID := uuid.New()
	productA := model.Product{ID: uuid.New(), Name: "Whey Protein", Price: decimal.NewFromInt(25)}
	productB := model.Product{ID: uuid.New(), Name: "Creatina", Price: decimal.NewFromInt(15)}

	input := CheckoutInput{
		RecipientName: "Erik Santos",
		Address:       "Av. Siempre Viva 742",
		PaymentMethod: "efectivo",
	}

	t.Run("empty cart is rejected and no order is created", func(t *testing.T) {
		mockCart := new(MockCartRepository)
		mockCart.On("ItemsForUser", mock.Anything, userID).Return([]model.CartItem{}, nil)
		mockOrders := new(MockOrderRepository)

		service := NewCartService(mockCart, new(MockProductRepository), mockOrders)
		order, err := service.Checkout(context.Background(), userID, input)

		assert.Equal(t, apperrors.ErrEmptyCart, err)
		assert.Nil(t, order)
		mockOrders.AssertNotCalled(t, "CreateWithCartClear")
	})

	t.Run("cart with only orphaned lines is rejected as empty", func(t *testing.T) {
		orphanID := uuid.New()
		mockCart := new(MockCartRepository)
		mockCart.On("ItemsForUser", mock.Anything, userID).Return([]model.CartItem{
			{UserID: userID, ProductID: orphanID, Quantity: 3},
		}, nil)
		mockProducts := new(MockProductRepository)
		mockProducts.On("FindByID", mock.Anything, orphanID).Return(nil, gorm.ErrRecordNotFound)
		mockOrders := new(MockOrderRepository)

		service := NewCartService(mockCart, mockProducts, mockOrders)
		order, err := service.Checkout(context.Background(), userID, input)

		assert.Equal(t, apperrors.ErrEmptyCart, err)
		assert.Nil(t, order)
		mockOrders.AssertNotCalled(t, "CreateWithCartClear")
	})

	t.Run("order snapshots the cart and total, then clears it", func(t *testing.T) {
		mockCart := new(MockCartRepository)
		mockCart.On("ItemsForUser", mock.Anything, userID).Return([]model.CartItem{
			{UserID: userID, ProductID: productA.ID, Quantity: 2},
			{UserID: userID, ProductID: productB.ID, Quantity: 1},
		}, nil)
		mockProducts := new(MockProductRepository)
		mockProducts.On("FindByID", mock.Anything, productA.ID).Return(&productA, nil)
		mockProducts.On("FindByID", mock.Anything, productB.ID).Return(&productB, nil)
		mockOrders := new(MockOrderRepository)
		mockOrders.On("CreateWithCartClear", mock.Anything, mock.AnythingOfType("*model.Order"), userID).Return(nil).Once()

		service := NewCartService(mockCart, mockProducts, mockOrders)
		order, err := service.Checkout(context.Background(), userID, input)

		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, "Erik Santos", order.RecipientName)
		assert.True(t, order.Total.Equal(decimal.NewFromInt(65)))

		// Line items are denormalized copies, not live references.
		assert.Len(t, order.Items, 2)
		assert.Equal(t, productA.ID, order.Items[0].ProductID)
		assert.Equal(t, "Whey Protein", order.Items[0].Name)
		assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.True(t, order.Items[0].Subtotal.Equal(decimal.NewFromInt(50)))
		assert.True(t, order.Items[1].Subtotal.Equal(decimal.NewFromInt(15)))

		mockCart.AssertExpectations(t)
		mockOrders.AssertExpectations(t)
	})
}

// Walks the add, add-again, remove scenario: quantities merge into a
// single line and the totals track 50, 75, 0.
func TestCartService_AddMergeRemoveScenario(t *testing.T) {
	userID := uuid.New()
	productA := model.Product{ID: uuid.New(), Name: "Whey Protein", Price: decimal.NewFromInt(25)}

	mockCart := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	mockProducts.On("FindByID", mock.Anything, productA.ID).Return(&productA, nil)
	service := NewCartService(mockCart, mockProducts, new(MockOrderRepository))
	ctx := context.Background()

	// Add quantity 2: cart holds one line {A, 2}, total 50.
	mockCart.On("AddOrIncrement", mock.Anything, userID, productA.ID, 2).Return(nil).Once()
	mockCart.On("ItemsForUser", mock.Anything, userID).Return([]model.CartItem{
		{UserID: userID, ProductID: productA.ID, Quantity: 2},
	}, nil).Once()

	assert.NoError(t, service.AddItem(ctx, userID, productA.ID, 2))
	view, err := service.View(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(50)))

	// Add quantity 1 more: still one line, now {A, 3}, total 75.
	mockCart.On("AddOrIncrement", mock.Anything, userID, productA.ID, 1).Return(nil).Once()
	mockCart.On("ItemsForUser", mock.Anything, userID).Return([]model.CartItem{
		{UserID: userID, ProductID: productA.ID, Quantity: 3},
	}, nil).Once()

	assert.NoError(t, service.AddItem(ctx, userID, productA.ID, 1))
	view, err = service.View(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(75)))

	// Remove A: cart empty, total 0.
	mockCart.On("Remove", mock.Anything, userID, productA.ID).Return(nil).Once()
	mockCart.On("ItemsForUser", mock.Anything, userID).Return([]model.CartItem{}, nil).Once()

	assert.NoError(t, service.RemoveItem(ctx, userID, productA.ID))
	view, err = service.View(ctx, userID)
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.Equal(decimal.Zero))

	mockCart.AssertExpectations(t)
}

func TestCartService_SetQuantity(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("overwrites the line quantity", func(t *testing.T) {
		mockCart := new(MockCartRepository)
		mockCart.On("SetQuantity", mock.Anything, userID, productID, 4).Return(nil)

		service := NewCartService(mockCart, new(MockProductRepository), new(MockOrderRepository))
		assert.NoError(t, service.SetQuantity(context.Background(), userID, productID, 4))
		mockCart.AssertExpectations(t)
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		mockCart := new(MockCartRepository)

		service := NewCartService(mockCart, new(MockProductRepository), new(MockOrderRepository))
		assert.Equal(t, apperrors.ErrInvalidQuantity, service.SetQuantity(context.Background(), userID, productID, 0))
		mockCart.AssertNotCalled(t, "SetQuantity")
	})
}
