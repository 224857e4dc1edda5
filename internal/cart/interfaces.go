package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

// CartRepository abstracts cart persistence for the service and its tests.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	FindByID(ctx context.Context, id uint) (*models.Cart, error)
	ListSaved(ctx context.Context) ([]models.Cart, error)
	Delete(ctx context.Context, id uint) error
	Touch(ctx context.Context, id uint) error
}

// CartItemRepository abstracts line item persistence.
type CartItemRepository interface {
	WithTx(tx *gorm.DB) CartItemRepository
	FindByCartAndProduct(ctx context.Context, cartID, productID uint) (*models.CartItem, error)
	FindByIDForCart(ctx context.Context, itemID, cartID uint) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, itemID uint, quantity int) error
	Delete(ctx context.Context, itemID uint) error
}

// ProductFinder is the read-only slice of the catalog the cart core needs.
type ProductFinder interface {
	WithTx(tx *gorm.DB) ProductFinder
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindActiveByID(ctx context.Context, id uint) (*models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
