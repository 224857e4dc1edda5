package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/martin-vega/tienda-backend/pkg/logger"
)

// CartID tags the log context with the cart id resolved from the URL, so
// every log line under /cart/{cartID} carries it. Handlers still validate
// the id themselves.
func CartID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if logg != nil {
				if id, err := strconv.ParseUint(chi.URLParam(r, "cartID"), 10, 32); err == nil && id > 0 {
					ctx = logg.WithCartID(ctx, uint(id))
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
