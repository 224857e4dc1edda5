package cart

import (
	cartsvc "github.com/martin-vega/tienda-backend/internal/cart"
)

// SaveCartRequest is the bulk save payload.
type SaveCartRequest struct {
	Items []SaveCartItem `json:"items" validate:"required,min=1,dive"`
}

// SaveCartItem is one entry of the bulk save payload.
type SaveCartItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// AddItemRequest adds a product to an existing cart.
type AddItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantityRequest replaces an item's quantity with an absolute value.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func toSaveCartInput(payload SaveCartRequest) []cartsvc.SaveCartItemInput {
	items := make([]cartsvc.SaveCartItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, cartsvc.SaveCartItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return items
}
