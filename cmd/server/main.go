package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopzone-io/shopzone-backend/config"
	"github.com/shopzone-io/shopzone-backend/internal/app/controller"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	"github.com/shopzone-io/shopzone-backend/internal/cache"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/shopzone-io/shopzone-backend/internal/middleware"
	"github.com/shopzone-io/shopzone-backend/internal/router"
	"github.com/shopzone-io/shopzone-backend/internal/scheduler"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
	"github.com/shopzone-io/shopzone-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting SHOPZONE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Cache backend: redis when reachable, in-process memory otherwise
	var store cache.Store
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable - falling back to in-memory cache", map[string]interface{}{
			"error": err.Error(),
		})
		store = cache.NewMemoryStore()
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close redis connection", err)
			}
		}()
		store = cache.NewRedisStore(redis.GetClient())
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())

	// Initialize services
	catalogService := service.NewCatalogService(categoryRepo, productRepo, store, cfg.Cache.TTL)
	cartService := service.NewCartService(cartRepo, productRepo, store, cfg.Cache.TTL)
	orderService := service.NewOrderService(orderRepo, productRepo)
	addressService := service.NewAddressService(addressRepo, store, cfg.Cache.TTL)

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	addressController := controller.NewAddressController(addressService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the ranking scheduler, with one refresh at boot
	topCategoryScheduler := scheduler.NewTopCategoryScheduler(catalogService)
	if err := catalogService.RefreshTopCategories(); err != nil {
		logger.Warn("Initial top category refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := topCategoryScheduler.Start(); err != nil {
		logger.Fatal("Failed to start top category scheduler", err)
	}
	defer topCategoryScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		catalogController,
		cartController,
		orderController,
		addressController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
