package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luminaretail/orders-backend/api/controllers"
	"github.com/luminaretail/orders-backend/api/middleware"
	"github.com/luminaretail/orders-backend/internal/orders"
	"github.com/luminaretail/orders-backend/internal/reports"
	"github.com/luminaretail/orders-backend/internal/stock"
	"github.com/luminaretail/orders-backend/pkg/config"
	"github.com/luminaretail/orders-backend/pkg/logger"
	pkgredis "github.com/luminaretail/orders-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *pkgredis.Client,
	ordersService orders.Service,
	stockService stock.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, map[string]controllers.Pinger{
			"db":    dbPinger,
			"redis": redisPinger(redisClient),
		}))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
			r.Post("/{orderId}/transition", controllers.TransitionOrder(ordersService, logg))
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/", controllers.ListStock(stockService, logg))
			r.Post("/sync", controllers.SyncStock(stockService, logg))
			r.Get("/{productId}", controllers.GetStock(stockService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", controllers.DashboardStats(reportsService, logg))
			r.Get("/sales-report", controllers.SalesReport(reportsService, logg))
			r.Get("/best-selling", controllers.BestSelling(reportsService, logg))
			r.Get("/monthly-earnings", controllers.MonthlyEarnings(reportsService, logg))
			r.Get("/category-sales", controllers.CategorySales(reportsService, logg))
		})
	})

	return r
}

// redisPinger keeps a typed nil *Client from masquerading as a live Pinger
// in the readiness map.
func redisPinger(client *pkgredis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
