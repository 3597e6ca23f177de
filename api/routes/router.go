package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paysecure/paysecure-backend/api/controllers"
	"github.com/paysecure/paysecure-backend/api/middleware"
	"github.com/paysecure/paysecure-backend/internal/accounts"
	"github.com/paysecure/paysecure-backend/internal/auth"
	"github.com/paysecure/paysecure-backend/internal/exchange"
	"github.com/paysecure/paysecure-backend/internal/orders"
	"github.com/paysecure/paysecure-backend/internal/snapshot"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	"github.com/paysecure/paysecure-backend/internal/transfers"
	"github.com/paysecure/paysecure-backend/internal/users"
	"github.com/paysecure/paysecure-backend/pkg/auth/session"
	"github.com/paysecure/paysecure-backend/pkg/config"
	"github.com/paysecure/paysecure-backend/pkg/db"
	"github.com/paysecure/paysecure-backend/pkg/logger"
	"github.com/paysecure/paysecure-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	registry *prometheus.Registry,
	authService auth.Service,
	accountsService accounts.Service,
	exchangeService exchange.Service,
	transfersService transfers.Service,
	ordersService orders.Service,
	transactionsService transactions.Service,
	snapshotService snapshot.Service,
	userRepo *users.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.Idempotency(redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessionChecker, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", controllers.WalletGet(accountsService, logg))
			if !cfg.App.IsProd() {
				r.Post("/test-funds", controllers.WalletTestFunds(accountsService, logg))
			}
		})

		r.Post("/exchange", controllers.ExchangeFunds(exchangeService, accountsService, logg))
		r.Post("/transfers", controllers.TransferFunds(transfersService, userRepo, accountsService, logg))
		r.Get("/transactions", controllers.TransactionsList(transactionsService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrdersPlace(ordersService, userRepo, accountsService, logg))
			r.Get("/", controllers.OrdersList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(ordersService, transactionsService, logg))
			r.Post("/{orderId}/accept", controllers.OrdersAccept(ordersService, logg))
			r.Post("/{orderId}/reject", controllers.OrdersReject(ordersService, logg))
			r.Post("/{orderId}/ship", controllers.OrdersShip(ordersService, logg))
			r.Post("/{orderId}/confirm", controllers.OrdersConfirm(ordersService, logg))
			r.Post("/{orderId}/dispute", controllers.OrdersDispute(ordersService, logg))
			// Arbitration has no admin UI yet; the endpoint stays off in prod.
			if !cfg.App.IsProd() {
				r.Post("/{orderId}/resolve", controllers.OrdersResolve(ordersService, logg))
			}
		})
	})

	if !cfg.App.IsProd() {
		r.Route("/api/admin/v1/snapshot", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
			r.Post("/export", controllers.AdminSnapshotExport(snapshotService, logg))
			r.Post("/restore", controllers.AdminSnapshotRestore(snapshotService, logg))
		})
	}

	return r
}
