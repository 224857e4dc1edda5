package cart

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

// ItemRepository persists cart line items.
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository binds the repository to the provided DB handle.
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *ItemRepository) WithTx(tx *gorm.DB) CartItemRepository {
	if tx == nil {
		return r
	}
	return &ItemRepository{db: tx}
}

// FindByCartAndProduct loads the unique (cart, product) row, locking it for
// the duration of the surrounding transaction so concurrent adds on the same
// pair serialize instead of losing an increment.
func (r *ItemRepository) FindByCartAndProduct(ctx context.Context, cartID, productID uint) (*models.CartItem, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var item models.CartItem
	err := query.
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDForCart loads an item scoped to one cart, locking the row so a
// concurrent quantity update or removal serializes against it. An id
// belonging to a different cart resolves to gorm.ErrRecordNotFound, never
// to the row.
func (r *ItemRepository) FindByIDForCart(ctx context.Context, itemID, cartID uint) (*models.CartItem, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var item models.CartItem
	err := query.
		Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new line item.
func (r *ItemRepository) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity overwrites the stored quantity.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, itemID uint, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// Delete removes the line item.
func (r *ItemRepository) Delete(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", itemID).Error
}
