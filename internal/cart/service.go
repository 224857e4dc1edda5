package cart

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
	pkgerrors "github.com/martin-vega/tienda-backend/pkg/errors"
)

// SaveCartItemInput is one entry of the bulk save payload.
type SaveCartItemInput struct {
	ProductID uint
	Quantity  int
}

// AddItemInput captures the payload for adding a product to a cart.
type AddItemInput struct {
	ProductID uint
	Quantity  int
}

// ItemResult reports an item mutation along with whether the row was newly
// created or merged into an existing one.
type ItemResult struct {
	Item    models.CartItem
	Created bool
}

// Service exposes the cart mutation and read operations.
type Service interface {
	CreateEmptyCart(ctx context.Context) (*models.Cart, error)
	SaveCart(ctx context.Context, items []SaveCartItemInput) (*models.Cart, error)
	GetCart(ctx context.Context, cartID uint) (*models.Cart, error)
	ListSavedCarts(ctx context.Context) ([]models.Cart, error)
	DeleteCart(ctx context.Context, cartID uint) error
	AddItem(ctx context.Context, cartID uint, input AddItemInput) (*ItemResult, error)
	RemoveItem(ctx context.Context, cartID, itemID uint) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (*ItemResult, error)
}

// ServiceParams groups the service dependencies.
type ServiceParams struct {
	Carts    CartRepository
	Items    CartItemRepository
	Products ProductFinder
	Tx       txRunner
}

type service struct {
	carts    CartRepository
	items    CartItemRepository
	products ProductFinder
	tx       txRunner
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repository is required")
	}
	if params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item repository is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product finder is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{
		carts:    params.Carts,
		items:    params.Items,
		products: params.Products,
		tx:       params.Tx,
	}, nil
}

// CreateEmptyCart opens a new draft cart with no items.
func (s *service) CreateEmptyCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{IsSaved: false}
	created, err := s.carts.Create(ctx, cart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}
	created.Items = []models.CartItem{}
	return created, nil
}

// SaveCart persists a complete cart snapshot atomically: either every item
// validates and the saved cart exists, or nothing from this call remains.
func (s *service) SaveCart(ctx context.Context, items []SaveCartItemInput) (*models.Cart, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El carrito debe contener al menos un item").
			WithDetails(map[string]string{"items": "no puede estar vacío"})
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "La cantidad debe ser al menos 1").
				WithDetails(map[string]string{"quantity": "debe ser al menos 1"})
		}
	}

	var saved *models.Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		itemsRepo := s.items.WithTx(tx)
		products := s.products.WithTx(tx)

		cart, err := carts.Create(ctx, &models.Cart{IsSaved: true})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
		}

		for _, input := range items {
			// Save restricts lookups to active products; AddItem does not.
			product, err := products.FindActiveByID(ctx, input.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Newf(pkgerrors.CodeNotFound, "Producto con ID %d no encontrado", input.ProductID)
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}

			if err := CheckStock(input.Quantity, product.Stock); err != nil {
				return pkgerrors.Newf(pkgerrors.CodeValidation,
					"Stock insuficiente para %s. Disponible: %d", product.Name, product.Stock)
			}

			if _, err := itemsRepo.Create(ctx, &models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart item")
			}
		}

		saved, err = carts.FindByID(ctx, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetCart loads a cart with items for projection.
func (s *service) GetCart(ctx context.Context, cartID uint) (*models.Cart, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Carrito no encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return cart, nil
}

// ListSavedCarts returns saved carts newest first. Drafts are excluded.
func (s *service) ListSavedCarts(ctx context.Context) ([]models.Cart, error) {
	carts, err := s.carts.ListSaved(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list saved carts")
	}
	return carts, nil
}

// DeleteCart removes the cart and cascades to its items. Saved carts can be
// deleted freely.
func (s *service) DeleteCart(ctx context.Context, cartID uint) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		if _, err := carts.FindByID(ctx, cartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Carrito no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if err := carts.Delete(ctx, cartID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart")
		}
		return nil
	})
}

// AddItem merges a product into the cart: a first add creates the row, a
// repeat add increments the stored quantity by the requested amount. The
// whole read-modify-write runs in one transaction with the existing row
// locked, so concurrent adds on the same pair cannot lose an update.
func (s *service) AddItem(ctx context.Context, cartID uint, input AddItemInput) (*ItemResult, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "La cantidad debe ser al menos 1").
			WithDetails(map[string]string{"quantity": "debe ser al menos 1"})
	}

	var result *ItemResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		itemsRepo := s.items.WithTx(tx)
		products := s.products.WithTx(tx)

		if _, err := carts.FindByID(ctx, cartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Carrito no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		// Unlike SaveCart, inactive products can still be added here.
		product, err := products.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Producto no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		if err := CheckStock(input.Quantity, product.Stock); err != nil {
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"Stock insuficiente. Disponible: %d", product.Stock)
		}

		existing, err := itemsRepo.FindByCartAndProduct(ctx, cartID, input.ProductID)
		switch {
		case err == nil:
			merged := existing.Quantity + input.Quantity
			if err := itemsRepo.UpdateQuantity(ctx, existing.ID, merged); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update item quantity")
			}
			existing.Quantity = merged
			existing.Product = *product
			result = &ItemResult{Item: *existing, Created: false}

		case errors.Is(err, gorm.ErrRecordNotFound):
			created, err := itemsRepo.Create(ctx, &models.CartItem{
				CartID:    cartID,
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart item")
			}
			created.Product = *product
			result = &ItemResult{Item: *created, Created: true}

		default:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
		}

		if err := carts.Touch(ctx, cartID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "touch cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveItem deletes an item scoped to the cart in the path. Item ids that
// belong to another cart are treated as not found.
func (s *service) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		itemsRepo := s.items.WithTx(tx)

		if _, err := carts.FindByID(ctx, cartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Carrito no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		item, err := itemsRepo.FindByIDForCart(ctx, itemID, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Item no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
		}

		if err := itemsRepo.Delete(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
		}
		return carts.Touch(ctx, cartID)
	})
}

// UpdateItemQuantity overwrites the stored quantity with an absolute value
// after checking it against the product's current stock.
func (s *service) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (*ItemResult, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "La cantidad debe ser mayor a 0")
	}

	var result *ItemResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		itemsRepo := s.items.WithTx(tx)

		if _, err := carts.FindByID(ctx, cartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Carrito no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		item, err := itemsRepo.FindByIDForCart(ctx, itemID, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Item no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
		}

		// The new absolute value must fit current stock, not the delta.
		if err := CheckStock(quantity, item.Product.Stock); err != nil {
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"Stock insuficiente. Disponible: %d", item.Product.Stock)
		}

		if err := itemsRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update item quantity")
		}
		item.Quantity = quantity
		result = &ItemResult{Item: *item, Created: false}

		return carts.Touch(ctx, cartID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
