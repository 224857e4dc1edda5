package cart

import (
	cartsvc "github.com/martin-vega/tienda-backend/internal/cart"
	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

type cartEnvelope struct {
	Message string           `json:"message"`
	Cart    cartsvc.CartView `json:"cart"`
}

type itemEnvelope struct {
	Message string           `json:"message"`
	Item    cartsvc.ItemView `json:"item"`
}

func newCartEnvelope(message string, cart *models.Cart) cartEnvelope {
	return cartEnvelope{Message: message, Cart: cartsvc.ProjectCart(cart)}
}

func newItemEnvelope(message string, item models.CartItem) itemEnvelope {
	return itemEnvelope{Message: message, Item: cartsvc.ProjectItem(item)}
}

func projectCarts(carts []models.Cart) []cartsvc.CartView {
	views := make([]cartsvc.CartView, 0, len(carts))
	for i := range carts {
		views = append(views, cartsvc.ProjectCart(&carts[i]))
	}
	return views
}
