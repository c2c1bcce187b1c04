package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is an immutable snapshot of a completed checkout. It is created
// exactly once per checkout and never updated or deleted.
type Order struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	RecipientName string          `json:"nombre" gorm:"size:255;not null"`
	Address       string          `json:"direccion" gorm:"size:512;not null"`
	PaymentMethod string          `json:"metodo_pago" gorm:"size:100"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(20,2);not null"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relations
	Items []OrderItem `json:"productos" gorm:"foreignKey:OrderID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a denormalized copy of a cart line at order time. Name,
// unit price and subtotal are captured here so later catalog edits cannot
// rewrite order history.
type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	OrderID   uuid.UUID       `json:"-" gorm:"type:char(36);not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:char(36);not null"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(20,2);not null"`
}
