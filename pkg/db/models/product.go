package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. The cart core reads price and stock
// but never mutates them; inventory updates come from an external process.
type Product struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;size:200;not null"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	ImageURL    *string         `gorm:"column:image_url"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
