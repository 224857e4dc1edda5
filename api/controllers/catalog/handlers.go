package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/martin-vega/tienda-backend/api/responses"
	catalogsvc "github.com/martin-vega/tienda-backend/internal/catalog"
	pkgerrors "github.com/martin-vega/tienda-backend/pkg/errors"
	"github.com/martin-vega/tienda-backend/pkg/logger"
)

// List returns the active catalog, with optional ?search= and ?ordering=.
func List(repo *catalogsvc.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		filters := catalogsvc.ListFilters{
			Search:   r.URL.Query().Get("search"),
			Ordering: r.URL.Query().Get("ordering"),
		}

		products, err := repo.ListActive(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products"))
			return
		}

		responses.WriteJSON(w, http.StatusOK, projectProducts(products))
	}
}

// Fetch returns one active product by id.
func Fetch(repo *catalogsvc.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		raw := chi.URLParam(r, "productID")
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeValidation, "identificador inválido: %s", raw))
			return
		}

		product, err := repo.FindActiveByID(r.Context(), uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeNotFound, "Producto con ID %d no encontrado", id))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product"))
			return
		}

		responses.WriteJSON(w, http.StatusOK, projectProduct(*product))
	}
}

// ListInStock returns active products with remaining stock.
func ListInStock(repo *catalogsvc.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		products, err := repo.ListActiveInStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products"))
			return
		}

		responses.WriteJSON(w, http.StatusOK, projectProducts(products))
	}
}
