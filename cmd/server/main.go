package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/autobid/walletd/internal/adapter/http"
	"github.com/autobid/walletd/internal/adapter/http/handler"
	"github.com/autobid/walletd/internal/adapter/http/middleware"
	postgresRepo "github.com/autobid/walletd/internal/adapter/repository/postgres"
	redisRepo "github.com/autobid/walletd/internal/adapter/repository/redis"
	"github.com/autobid/walletd/internal/infrastructure/config"
	"github.com/autobid/walletd/internal/infrastructure/logger"
	"github.com/autobid/walletd/internal/infrastructure/metrics"
	"github.com/autobid/walletd/internal/infrastructure/postgres"
	"github.com/autobid/walletd/internal/infrastructure/redis"
	"github.com/autobid/walletd/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	subscriptionRepo := postgresRepo.NewSubscriptionRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	welcomeCredit, err := cfg.WelcomeCreditAmount()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid welcome credit")
	}

	// Use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, txnRepo, idGen, retrier)
	walletUC := usecase.NewWalletUseCase(walletRepo, subscriptionRepo, ledgerUC, idGen, usecase.WalletPolicy{
		DefaultCurrency:     cfg.DefaultCurrency,
		WelcomeCredit:       welcomeCredit,
		BaseTierWalletLimit: cfg.BaseTierWalletLimit,
	})
	userUC := usecase.NewUserUseCase(userRepo, walletUC, idGen)
	transferUC := usecase.NewTransferUseCase(ledgerUC, txManager, walletRepo, txnRepo, userRepo, idGen)
	txnUC := usecase.NewTransactionUseCase(txnRepo, cache)
	subscriptionUC := usecase.NewSubscriptionUseCase(subscriptionRepo, ledgerUC)

	// Router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:         handler.NewUserHandler(userUC, m),
		WalletHandler:       handler.NewWalletHandler(walletUC, txnUC, m),
		LedgerHandler:       handler.NewLedgerHandler(ledgerUC, m),
		TransferHandler:     handler.NewTransferHandler(transferUC, m),
		TransactionHandler:  handler.NewTransactionHandler(txnUC),
		SubscriptionHandler: handler.NewSubscriptionHandler(subscriptionUC, m),
		HealthHandler:       handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:    idempotencyStore,
		IdempotencyTTL:      cfg.IdempotencyTTL,
		RateLimiter:         middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
