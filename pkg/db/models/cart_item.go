package models

import "time"

// CartItem pairs a product with a quantity inside one cart. A product
// appears at most once per cart; repeated adds increment Quantity.
type CartItem struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	CartID    uint      `gorm:"column:cart_id;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uint      `gorm:"column:product_id;not null;uniqueIndex:idx_cart_items_cart_product"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
