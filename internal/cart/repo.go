package cart

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

// Repository persists carts.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new cart row.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindByID loads a cart with its items and their product snapshots.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListSaved returns saved carts newest first, with items preloaded for the
// projection. Draft carts are reachable only by id.
func (r *Repository) ListSaved(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		Where("is_saved = ?", true).
		Order("created_at DESC").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

// Delete removes the cart and its items. Items are deleted explicitly so
// the cascade holds on stores that do not enforce the FK constraint.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Cart{}, "id = ?", id).Error
}

// Touch bumps the cart's updated_at whenever one of its items changes.
func (r *Repository) Touch(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}
