package middleware

import (
	"net/http"
	"strings"

	"github.com/martin-vega/tienda-backend/api/responses"
	pkgauth "github.com/martin-vega/tienda-backend/pkg/auth"
	"github.com/martin-vega/tienda-backend/pkg/config"
	pkgerrors "github.com/martin-vega/tienda-backend/pkg/errors"
	"github.com/martin-vega/tienda-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// token subject. It is only mounted when TIENDA_AUTH_ENFORCE is set.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithSubject(r.Context(), claims.Subject)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"subject": claims.Subject})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
