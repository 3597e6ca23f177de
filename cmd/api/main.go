package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/paysecure/paysecure-backend/api/routes"
	"github.com/paysecure/paysecure-backend/internal/accounts"
	"github.com/paysecure/paysecure-backend/internal/auth"
	"github.com/paysecure/paysecure-backend/internal/exchange"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/internal/orders"
	"github.com/paysecure/paysecure-backend/internal/snapshot"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	"github.com/paysecure/paysecure-backend/internal/transfers"
	"github.com/paysecure/paysecure-backend/internal/users"
	"github.com/paysecure/paysecure-backend/pkg/auth/session"
	"github.com/paysecure/paysecure-backend/pkg/config"
	"github.com/paysecure/paysecure-backend/pkg/db"
	"github.com/paysecure/paysecure-backend/pkg/logger"
	"github.com/paysecure/paysecure-backend/pkg/metrics"
	"github.com/paysecure/paysecure-backend/pkg/migrate"
	"github.com/paysecure/paysecure-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
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

	registry := prometheus.NewRegistry()
	walletMetrics := metrics.NewWalletMetrics(registry)

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)

	ledgerService, err := ledger.NewService(ledger.NewRepository(gormDB), walletMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	transactionsService, err := transactions.NewService(transactions.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create transactions service", err)
		os.Exit(1)
	}

	accountsService, err := accounts.NewService(accounts.ServiceParams{
		Repo:         accounts.NewRepository(gormDB),
		Ledger:       ledgerService,
		TxRunner:     dbClient,
		WalletConfig: cfg.Wallet,
		AppConfig:    cfg.App,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		Accounts:       accountsService,
		SessionManager: sessionManager,
		TxRunner:       dbClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:         orders.NewRepository(gormDB),
		Ledger:       ledgerService,
		Transactions: transactionsService,
		TxRunner:     dbClient,
		Metrics:      walletMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	transfersService, err := transfers.NewService(transfers.ServiceParams{
		Ledger:       ledgerService,
		Transactions: transactionsService,
		TxRunner:     dbClient,
		Metrics:      walletMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create transfers service", err)
		os.Exit(1)
	}

	exchangeService, err := exchange.NewService(exchange.ServiceParams{
		Ledger:   ledgerService,
		TxRunner: dbClient,
		Metrics:  walletMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create exchange service", err)
		os.Exit(1)
	}

	snapshotService, err := snapshot.NewService(snapshot.ServiceParams{
		DB:       gormDB,
		Store:    redisClient,
		TxRunner: dbClient,
		Config:   cfg.Snapshot,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot service", err)
		os.Exit(1)
	}

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			registry,
			authService,
			accountsService,
			exchangeService,
			transfersService,
			ordersService,
			transactionsService,
			snapshotService,
			userRepo,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
