package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/rocketcart/api/controllers"
	cartcontrollers "github.com/angelmondragon/rocketcart/api/controllers/cart"
	"github.com/angelmondragon/rocketcart/api/middleware"
	"github.com/angelmondragon/rocketcart/internal/cart"
	"github.com/angelmondragon/rocketcart/internal/notify"
	"github.com/angelmondragon/rocketcart/pkg/config"
	"github.com/angelmondragon/rocketcart/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storage controllers.Pinger,
	gatherer prometheus.Gatherer,
	cartService cart.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"storage": storage,
		}))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.Notifications(notify.DefaultInboxSize))
		r.Get("/", cartcontrollers.CartFetch(cartService, logg))
		r.Post("/items", cartcontrollers.CartAddItem(cartService, logg))
		r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, logg))
		r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(cartService, logg))
	})

	return r
}
