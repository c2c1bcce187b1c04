package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymstore/internal/model"
)

// OrderRepository defines order persistence operations. Orders are
// append-only: once written they are never updated or deleted.
type OrderRepository interface {
	CreateWithCartClear(ctx context.Context, order *model.Order, userID uuid.UUID) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithCartClear persists the order (with its line items) and empties
// the user's cart inside one transaction, so a crash can never leave an
// order placed with the cart still full, or the reverse.
func (r *orderRepository) CreateWithCartClear(ctx context.Context, order *model.Order, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
	})
}
