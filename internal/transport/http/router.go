package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/app"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/clock"
)

// NewRouter assembles the service's routes and middleware.
func NewRouter(lifecycle *app.LifecycleService, ledger *app.LedgerService, alerts *app.AlertService, clk clock.Clock, logger *zap.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Use(CORS(corsOrigins))

	r.Get("/health", HealthHandler)
	r.Get("/alerts", HandleAlerts(alerts))
	r.Get("/registries/{registryID}/transactions", HandleListTransactions(ledger))

	r.Route("/orders/{orderID}", func(r chi.Router) {
		r.Get("/", HandleGetOrder(lifecycle))
		r.Post("/confirm", HandleConfirmOrder(lifecycle))
		r.Post("/ship", HandleShipOrder(lifecycle, clk))
		r.Post("/deliver", HandleDeliverOrder(lifecycle))
		r.Post("/cancel", HandleCancelOrder(lifecycle))
	})

	r.NotFound(NotFoundHandler())

	return r
}
