package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a user's cart. The unique index on
// (user_id, product_id) guarantees at most one line per product, so a
// repeated add merges quantities instead of appending a duplicate.
//
// ProductID is intentionally not a foreign key: a cart may reference a
// product that has since been removed from the catalog. Such lines are
// filtered out when the cart is resolved.
type CartItem struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
