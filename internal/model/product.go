package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a purchasable item in the catalog.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Stock       int             `json:"stock" gorm:"not null;default:0"` // persisted but not enforced at purchase
	Description string          `json:"description" gorm:"type:text"`
	Image       string          `json:"image" gorm:"size:512"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
