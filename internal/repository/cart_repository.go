package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymstore/internal/model"
)

// CartRepository defines cart persistence operations. Every mutation is a
// single conditional statement, so concurrent requests for the same user
// are serialized by the database instead of racing through a
// read-modify-write pair.
type CartRepository interface {
	ItemsForUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// ItemsForUser returns the user's cart lines in insertion order.
func (r *cartRepository) ItemsForUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddOrIncrement inserts a new cart line or adds quantity to the existing
// one for the same product, as one upsert against the (user_id, product_id)
// unique key. This is what keeps the one-line-per-product invariant under
// concurrent adds.
func (r *cartRepository) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	item := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&item).Error
}

// SetQuantity overwrites the quantity of an existing line. A missing line
// is a silent no-op.
func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity).Error
}

// Remove deletes the line for the given product. Idempotent.
func (r *cartRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

// Clear empties the user's cart.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
