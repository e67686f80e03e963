package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/ec-shop/internal/api"
	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/command"
	"github.com/example/ec-shop/internal/config"
	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/order"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
	"github.com/example/ec-shop/internal/infrastructure/bus"
	"github.com/example/ec-shop/internal/infrastructure/memory"
	"github.com/example/ec-shop/internal/infrastructure/postgres"
	"github.com/example/ec-shop/internal/infrastructure/redisstore"
	"github.com/example/ec-shop/internal/query"
	"github.com/example/ec-shop/internal/salesforce"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		carts      cart.Repository
		orders     order.Repository
		products   product.Repository
		users      user.Repository
		sfContexts salesforce.ContextRepository
	)

	switch cfg.Storage {
	case "postgres":
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("failed to prepare schema", zap.Error(err))
		}
		carts = postgres.NewCartRepository(db)
		orders = postgres.NewOrderRepository(db)
		products = postgres.NewProductRepository(db)
		users = postgres.NewUserRepository(db)

		redisClient, err := redisstore.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		sfContexts = redisstore.NewContextRepository(redisClient)

		logger.Info("storage ready",
			zap.String("backend", "postgres"),
			zap.String("redis", cfg.RedisAddr))
	default:
		carts = memory.NewCartRepository()
		orders = memory.NewOrderRepository()
		products = memory.NewProductRepository()
		users = memory.NewUserRepository()
		sfContexts = memory.NewContextRepository()
		logger.Info("storage ready", zap.String("backend", "memory"))
	}

	var eventBus command.EventBus
	if cfg.Storage == "postgres" {
		kafkaBus := bus.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaBus.Close()
		eventBus = kafkaBus
		logger.Info("event bus ready",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	} else {
		eventBus = bus.NewInMemory()
		logger.Info("event bus ready", zap.String("mode", "in-memory"))
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)

	sfClient := salesforce.NewStubClient()
	if cfg.SalesforceTTLSeconds > 0 {
		ttl, err := salesforce.NewTTL(cfg.SalesforceTTLSeconds)
		if err != nil {
			logger.Fatal("invalid salesforce context ttl", zap.Error(err))
		}
		sfClient.SetTTL(ttl)
	}

	cmdHandler := command.NewHandler(
		carts, orders, products, users, sfContexts, sfClient, eventBus, cfg.Currencies, logger)
	queryHandler := query.NewHandler(carts, orders, products, users)

	handlers := api.NewHandlers(cmdHandler, queryHandler, logger)
	authHandlers := api.NewAuthHandlers(cmdHandler, users, jwtService, logger)
	router := api.NewRouter(handlers, authHandlers, jwtService, logger)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}
