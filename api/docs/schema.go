package docs

import (
	"net/http"

	"github.com/martin-vega/tienda-backend/api/responses"
)

// Route is one documented operation. The table below is the source of
// truth for the generated schema; handlers are not introspected.
type Route struct {
	Method      string
	Path        string
	Summary     string
	Tag         string
	RequestBody map[string]any
	Statuses    map[string]string
}

var routes = []Route{
	{
		Method:  http.MethodGet,
		Path:    "/api/products/",
		Summary: "Lista los productos activos, con búsqueda y ordenamiento opcionales",
		Tag:     "products",
		Statuses: map[string]string{
			"200": "Lista de productos",
		},
	},
	{
		Method:  http.MethodGet,
		Path:    "/api/products/active/",
		Summary: "Lista los productos activos con stock disponible",
		Tag:     "products",
		Statuses: map[string]string{
			"200": "Lista de productos",
		},
	},
	{
		Method:  http.MethodGet,
		Path:    "/api/products/{productID}/",
		Summary: "Obtiene un producto activo por su ID",
		Tag:     "products",
		Statuses: map[string]string{
			"200": "Producto",
			"404": "Producto no encontrado",
		},
	},
	{
		Method:  http.MethodPost,
		Path:    "/api/cart/create/",
		Summary: "Crea un carrito vacío",
		Tag:     "cart",
		Statuses: map[string]string{
			"201": "Carrito creado",
		},
	},
	{
		Method:  http.MethodPost,
		Path:    "/api/cart/save/",
		Summary: "Guarda un carrito completo con sus items",
		Tag:     "cart",
		RequestBody: map[string]any{
			"items": []map[string]any{
				{"product_id": 1, "quantity": 2},
			},
		},
		Statuses: map[string]string{
			"201": "Carrito guardado",
			"400": "Validación o stock insuficiente",
			"404": "Producto no encontrado",
		},
	},
	{
		Method:  http.MethodGet,
		Path:    "/api/cart/",
		Summary: "Lista los carritos guardados, más recientes primero",
		Tag:     "cart",
		Statuses: map[string]string{
			"200": "Lista de carritos",
		},
	},
	{
		Method:  http.MethodGet,
		Path:    "/api/cart/{cartID}/",
		Summary: "Obtiene un carrito con sus totales",
		Tag:     "cart",
		Statuses: map[string]string{
			"200": "Carrito",
			"404": "Carrito no encontrado",
		},
	},
	{
		Method:  http.MethodDelete,
		Path:    "/api/cart/{cartID}/",
		Summary: "Elimina un carrito y sus items",
		Tag:     "cart",
		Statuses: map[string]string{
			"204": "Eliminado",
			"404": "Carrito no encontrado",
		},
	},
	{
		Method:  http.MethodPost,
		Path:    "/api/cart/{cartID}/items/",
		Summary: "Agrega un producto al carrito, fusionando cantidades",
		Tag:     "cart",
		RequestBody: map[string]any{
			"product_id": 1,
			"quantity":   2,
		},
		Statuses: map[string]string{
			"201": "Item creado",
			"200": "Cantidad fusionada en un item existente",
			"400": "Stock insuficiente",
			"404": "Carrito o producto no encontrado",
		},
	},
	{
		Method:  http.MethodDelete,
		Path:    "/api/cart/{cartID}/items/{itemID}/",
		Summary: "Elimina un item del carrito",
		Tag:     "cart",
		Statuses: map[string]string{
			"204": "Eliminado",
			"404": "Carrito o item no encontrado",
		},
	},
	{
		Method:  http.MethodPatch,
		Path:    "/api/cart/{cartID}/items/{itemID}/quantity/",
		Summary: "Actualiza la cantidad de un item a un valor absoluto",
		Tag:     "cart",
		RequestBody: map[string]any{
			"quantity": 3,
		},
		Statuses: map[string]string{
			"200": "Cantidad actualizada",
			"400": "Cantidad inválida o stock insuficiente",
			"404": "Carrito o item no encontrado",
		},
	},
}

// Routes returns the documented route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// OpenAPIDocument renders the route table as an OpenAPI 3 document.
func OpenAPIDocument() map[string]any {
	paths := map[string]any{}
	for _, route := range routes {
		operations, _ := paths[route.Path].(map[string]any)
		if operations == nil {
			operations = map[string]any{}
			paths[route.Path] = operations
		}

		responsesByStatus := map[string]any{}
		for status, description := range route.Statuses {
			responsesByStatus[status] = map[string]any{"description": description}
		}

		operation := map[string]any{
			"summary":   route.Summary,
			"tags":      []string{route.Tag},
			"responses": responsesByStatus,
		}
		if route.RequestBody != nil {
			operation["requestBody"] = map[string]any{
				"content": map[string]any{
					"application/json": map[string]any{
						"example": route.RequestBody,
					},
				},
			}
		}

		operations[toLowerMethod(route.Method)] = operation
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Tienda API",
			"description": "API de catálogo y carrito de compras",
			"version":     "1.0.0",
		},
		"paths": paths,
	}
}

// Handler serves the schema document.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, OpenAPIDocument())
	}
}

func toLowerMethod(method string) string {
	switch method {
	case http.MethodGet:
		return "get"
	case http.MethodPost:
		return "post"
	case http.MethodPut:
		return "put"
	case http.MethodPatch:
		return "patch"
	case http.MethodDelete:
		return "delete"
	}
	return method
}
