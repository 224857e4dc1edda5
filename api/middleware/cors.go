package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/martin-vega/tienda-backend/pkg/config"
)

// CORS applies the configured allowed origin policy. Origins come from
// TIENDA_CORS_ALLOWED_ORIGINS and default to the local frontend ports.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
