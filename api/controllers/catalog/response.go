package catalog

import (
	"time"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

type productView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func projectProduct(product models.Product) productView {
	return productView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func projectProducts(products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, product := range products {
		views = append(views, projectProduct(product))
	}
	return views
}
