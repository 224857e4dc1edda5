package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/martin-vega/tienda-backend/api/controllers"
	cartcontrollers "github.com/martin-vega/tienda-backend/api/controllers/cart"
	catalogcontrollers "github.com/martin-vega/tienda-backend/api/controllers/catalog"
	"github.com/martin-vega/tienda-backend/api/docs"
	"github.com/martin-vega/tienda-backend/api/middleware"
	"github.com/martin-vega/tienda-backend/internal/cart"
	"github.com/martin-vega/tienda-backend/internal/catalog"
	"github.com/martin-vega/tienda-backend/pkg/config"
	"github.com/martin-vega/tienda-backend/pkg/logger"
	"github.com/martin-vega/tienda-backend/pkg/metrics"
	"github.com/martin-vega/tienda-backend/pkg/redis"
)

// Params groups the router dependencies. Redis and metrics are optional;
// when absent the corresponding middleware is skipped.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	Metrics     *metrics.HTTPMetrics
	CartService cart.Service
	Catalog     *catalog.Repository
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(p.Config.CORS),
	)
	if p.Metrics != nil {
		r.Use(p.Metrics.Middleware())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.DB))
	})

	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if p.Config.JWT.Enforce {
			r.Use(middleware.Auth(p.Config.JWT, p.Logger))
		}
		if p.Redis != nil {
			r.Use(middleware.Idempotency(p.Redis, p.Logger))
		}

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogcontrollers.List(p.Catalog, p.Logger))
			r.Get("/active/", catalogcontrollers.ListInStock(p.Catalog, p.Logger))
			r.Get("/{productID}/", catalogcontrollers.Fetch(p.Catalog, p.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/create/", cartcontrollers.Create(p.CartService, p.Logger))
			r.Post("/save/", cartcontrollers.Save(p.CartService, p.Logger))
			r.Get("/", cartcontrollers.List(p.CartService, p.Logger))

			r.Route("/{cartID}", func(r chi.Router) {
				r.Use(middleware.CartID(p.Logger))
				r.Get("/", cartcontrollers.Fetch(p.CartService, p.Logger))
				r.Delete("/", cartcontrollers.Delete(p.CartService, p.Logger))
				r.Post("/items/", cartcontrollers.AddItem(p.CartService, p.Logger))
				r.Delete("/items/{itemID}/", cartcontrollers.RemoveItem(p.CartService, p.Logger))
				r.Patch("/items/{itemID}/quantity/", cartcontrollers.UpdateQuantity(p.CartService, p.Logger))
			})
		})

		r.Get("/docs/schema/", docs.Handler())
	})

	return r
}
