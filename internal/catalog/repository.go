package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

// ListFilters describe the supported knobs for the product browse endpoint.
type ListFilters struct {
	Search   string
	Ordering string
}

var orderingColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
}

const defaultOrdering = "-created_at"

// Repository exposes read-only access to the product catalog. Products are
// managed by an external process; the API never writes them.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads a product regardless of its active flag.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveByID loads a product restricted to active listings.
func (r *Repository) FindActiveByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive returns active products, optionally filtered by a name search
// and reordered by a whitelisted column.
func (r *Repository) ListActive(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)

	if search := strings.TrimSpace(filters.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var products []models.Product
	if err := query.Order(orderClause(filters.Ordering)).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListActiveInStock returns active products with remaining stock.
func (r *Repository) ListActiveInStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND stock > 0", true).
		Order(orderClause(defaultOrdering)).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// orderClause translates "-created_at" style ordering values into SQL,
// falling back to newest-first for unknown columns.
func orderClause(ordering string) string {
	value := strings.TrimSpace(ordering)
	if value == "" {
		value = defaultOrdering
	}

	direction := "ASC"
	if strings.HasPrefix(value, "-") {
		direction = "DESC"
		value = value[1:]
	}

	column, ok := orderingColumns[value]
	if !ok {
		return "created_at DESC"
	}
	return column + " " + direction
}
