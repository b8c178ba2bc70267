package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kolamtech/tambak-backend/api/controllers"
	"github.com/kolamtech/tambak-backend/api/middleware"
	"github.com/kolamtech/tambak-backend/internal/auth"
	"github.com/kolamtech/tambak-backend/internal/customers"
	"github.com/kolamtech/tambak-backend/internal/debts"
	"github.com/kolamtech/tambak-backend/internal/expenses"
	"github.com/kolamtech/tambak-backend/internal/ponds"
	"github.com/kolamtech/tambak-backend/internal/reports"
	"github.com/kolamtech/tambak-backend/internal/stock"
	"github.com/kolamtech/tambak-backend/internal/transactions"
	"github.com/kolamtech/tambak-backend/pkg/auth/session"
	"github.com/kolamtech/tambak-backend/pkg/config"
	"github.com/kolamtech/tambak-backend/pkg/db"
	"github.com/kolamtech/tambak-backend/pkg/logger"
	"github.com/kolamtech/tambak-backend/pkg/metrics"
	pkgredis "github.com/kolamtech/tambak-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth         auth.Service
	Ponds        ponds.Service
	Customers    customers.Service
	Transactions transactions.Service
	Debts        debts.Service
	Expenses     expenses.Service
	Stock        stock.Service
	Reports      reports.Service
}

// NewRouter assembles the chi router with the full middleware stack.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	sessions session.AccessSessionChecker,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Get("/health", controllers.Health(dbP, redisClient, logg))
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
		r.Post("/logout", controllers.Logout(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/ponds", func(r chi.Router) {
			r.Get("/", controllers.PondList(svcs.Ponds, logg))
			r.Get("/{id}", controllers.PondGet(svcs.Ponds, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireElevated(logg))
				r.Post("/", controllers.PondCreate(svcs.Ponds, logg))
				r.Put("/{id}", controllers.PondUpdate(svcs.Ponds, logg))
				r.Delete("/{id}", controllers.PondDelete(svcs.Ponds, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(svcs.Customers, logg))
			r.Get("/{id}", controllers.CustomerGet(svcs.Customers, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireElevated(logg))
				r.Post("/", controllers.CustomerCreate(svcs.Customers, logg))
				r.Put("/{id}", controllers.CustomerUpdate(svcs.Customers, logg))
				r.Delete("/{id}", controllers.CustomerDelete(svcs.Customers, logg))
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionList(svcs.Transactions, logg))
			r.Get("/{id}", controllers.TransactionGet(svcs.Transactions, logg))
			r.Post("/", controllers.TransactionCreate(svcs.Transactions, logg))
			r.Put("/{id}", controllers.TransactionUpdate(svcs.Transactions, logg))
			r.With(middleware.RequireElevated(logg)).
				Delete("/{id}", controllers.TransactionDelete(svcs.Transactions, logg))
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", controllers.DebtList(svcs.Debts, logg))
			r.Get("/{id}", controllers.DebtGet(svcs.Debts, logg))
			r.Post("/", controllers.DebtCreate(svcs.Debts, logg))
			r.Post("/{id}/payments", controllers.DebtPaymentCreate(svcs.Debts, logg))
			r.Get("/{id}/payments", controllers.DebtPaymentList(svcs.Debts, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", controllers.ExpenseList(svcs.Expenses, logg))
			r.Get("/{id}", controllers.ExpenseGet(svcs.Expenses, logg))
			r.Post("/", controllers.ExpenseCreate(svcs.Expenses, logg))
			r.Put("/{id}", controllers.ExpenseUpdate(svcs.Expenses, logg))
			r.With(middleware.RequireElevated(logg)).
				Delete("/{id}", controllers.ExpenseDelete(svcs.Expenses, logg))
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/", controllers.StockItemList(svcs.Stock, logg))
			r.Get("/{id}", controllers.StockItemGet(svcs.Stock, logg))
			r.With(middleware.RequireElevated(logg)).
				Post("/", controllers.StockItemCreate(svcs.Stock, logg))
			r.Post("/{id}/movements", controllers.StockMovementCreate(svcs.Stock, logg))
			r.Get("/{id}/movements", controllers.StockMovementList(svcs.Stock, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", controllers.ReportSummary(svcs.Reports, logg))
			r.Get("/monthly", controllers.ReportMonthly(svcs.Reports, logg))
		})
	})

	return r
}
