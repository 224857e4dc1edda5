package models

import "time"

// Cart is an anonymous container of line items. IsSaved distinguishes a
// draft built item by item from a finalized snapshot stored in one shot.
type Cart struct {
	ID        uint       `gorm:"column:id;primaryKey"`
	SessionID *string    `gorm:"column:session_id;size:255"`
	IsSaved   bool       `gorm:"column:is_saved;not null;default:false"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
