package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/martin-vega/tienda-backend/internal/catalog"
	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

// catalogFinder adapts the catalog repository to the ProductFinder surface.
type catalogFinder struct {
	repo *catalog.Repository
}

// NewProductFinder exposes catalog reads to the cart service.
func NewProductFinder(repo *catalog.Repository) ProductFinder {
	return catalogFinder{repo: repo}
}

func (f catalogFinder) WithTx(tx *gorm.DB) ProductFinder {
	return catalogFinder{repo: f.repo.WithTx(tx)}
}

func (f catalogFinder) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return f.repo.FindByID(ctx, id)
}

func (f catalogFinder) FindActiveByID(ctx context.Context, id uint) (*models.Product, error) {
	return f.repo.FindActiveByID(ctx, id)
}
