package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kolamtech/tambak-backend/api/routes"
	"github.com/kolamtech/tambak-backend/internal/auth"
	"github.com/kolamtech/tambak-backend/internal/customers"
	"github.com/kolamtech/tambak-backend/internal/debts"
	"github.com/kolamtech/tambak-backend/internal/expenses"
	"github.com/kolamtech/tambak-backend/internal/ponds"
	"github.com/kolamtech/tambak-backend/internal/reports"
	"github.com/kolamtech/tambak-backend/internal/stock"
	"github.com/kolamtech/tambak-backend/internal/transactions"
	"github.com/kolamtech/tambak-backend/internal/users"
	"github.com/kolamtech/tambak-backend/pkg/auth/session"
	"github.com/kolamtech/tambak-backend/pkg/config"
	"github.com/kolamtech/tambak-backend/pkg/db"
	"github.com/kolamtech/tambak-backend/pkg/logger"
	"github.com/kolamtech/tambak-backend/pkg/metrics"
	"github.com/kolamtech/tambak-backend/pkg/migrate"
	"github.com/kolamtech/tambak-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	pondsRepo := ponds.NewRepository(conn)
	customersRepo := customers.NewRepository(conn)
	salesRepo := transactions.NewRepository(conn)
	debtsRepo := debts.NewRepository(conn)
	expensesRepo := expenses.NewRepository(conn)
	stockRepo := stock.NewRepository(conn)
	reportsRepo := reports.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	pondsService, err := ponds.NewService(pondsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ponds service", err)
		os.Exit(1)
	}
	customersService, err := customers.NewService(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}
	transactionsService, err := transactions.NewService(transactions.ServiceParams{
		Runner:    dbClient,
		Sales:     salesRepo,
		Debts:     debtsRepo,
		Customers: customersRepo,
		Ponds:     pondsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create transactions service", err)
		os.Exit(1)
	}
	debtsService, err := debts.NewService(debts.ServiceParams{
		Runner:    dbClient,
		Repo:      debtsRepo,
		Customers: customersRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create debts service", err)
		os.Exit(1)
	}
	expensesService, err := expenses.NewService(expensesRepo, pondsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create expenses service", err)
		os.Exit(1)
	}
	stockService, err := stock.NewService(dbClient, stockRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}
	reportsService, err := reports.NewService(reportsRepo, debtsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, registry, httpMetrics, routes.Services{
			Auth:         authService,
			Ponds:        pondsService,
			Customers:    customersService,
			Transactions: transactionsService,
			Debts:        debtsService,
			Expenses:     expensesService,
			Stock:        stockService,
			Reports:      reportsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
