package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the storefront's products table. The interaction service
// only reads it: prices seed each page session's unit-price registry.
type Product struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Slug      string          `gorm:"uniqueIndex;not null" json:"slug"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	InStock   bool            `gorm:"not null;default:true" json:"in_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName keeps the legacy table name.
func (Product) TableName() string {
	return "products"
}
