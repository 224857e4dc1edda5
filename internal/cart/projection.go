package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

// ProductView is the product snapshot embedded in cart responses.
type ProductView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemView is one projected line item. Subtotal reflects the product's
// current price, not a snapshot taken when the item was added.
type ItemView struct {
	ID        uint        `json:"id"`
	Product   ProductView `json:"product"`
	Quantity  int         `json:"quantity"`
	Subtotal  string      `json:"subtotal"`
	CreatedAt time.Time   `json:"created_at"`
}

// CartView is the read-time projection of a cart. Totals are recomputed
// from live data on every read and never stored.
type CartView struct {
	ID         uint       `json:"id"`
	SessionID  *string    `json:"session_id"`
	Items      []ItemView `json:"items"`
	Total      string     `json:"total"`
	TotalItems int        `json:"total_items"`
	IsSaved    bool       `json:"is_saved"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ProjectProduct renders the catalog snapshot with a fixed-point price.
func ProjectProduct(product models.Product) ProductView {
	return ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
	}
}

// ProjectItem computes subtotal = current price x quantity.
func ProjectItem(item models.CartItem) ItemView {
	subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return ItemView{
		ID:        item.ID,
		Product:   ProjectProduct(item.Product),
		Quantity:  item.Quantity,
		Subtotal:  subtotal.StringFixed(2),
		CreatedAt: item.CreatedAt,
	}
}

// ProjectCart sums item subtotals and quantities. An empty cart projects
// total "0.00" and total_items 0.
func ProjectCart(cart *models.Cart) CartView {
	items := make([]ItemView, 0, len(cart.Items))
	total := decimal.Zero
	totalItems := 0

	for _, item := range cart.Items {
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		totalItems += item.Quantity
		items = append(items, ItemView{
			ID:        item.ID,
			Product:   ProjectProduct(item.Product),
			Quantity:  item.Quantity,
			Subtotal:  subtotal.StringFixed(2),
			CreatedAt: item.CreatedAt,
		})
	}

	return CartView{
		ID:         cart.ID,
		SessionID:  cart.SessionID,
		Items:      items,
		Total:      total.StringFixed(2),
		TotalItems: totalItems,
		IsSaved:    cart.IsSaved,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
