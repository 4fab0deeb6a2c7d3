package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SakshiBishnoi/eCommerce/internal/cache"
	"github.com/SakshiBishnoi/eCommerce/internal/events"
	"github.com/SakshiBishnoi/eCommerce/internal/handler"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
	"github.com/SakshiBishnoi/eCommerce/internal/service"
	"github.com/SakshiBishnoi/eCommerce/pkg/config"
	"github.com/SakshiBishnoi/eCommerce/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.Duration("dashboard_cache_ttl", cfg.SummaryTTL))

	ctx := context.Background()
	mongoClient, err := repository.NewMongoClient(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	for _, r := range []interface {
		EnsureIndexes(context.Context) error
	}{userRepo, productRepo, categoryRepo, cartRepo, orderRepo} {
		if err := r.EnsureIndexes(indexCtx); err != nil {
			logger.Warn("Failed to ensure indexes", zap.Error(err))
		}
	}
	cancelIndexes()

	producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer producer.Close()

	summaryCache := cache.NewSummaryCache(cfg.SummaryTTL)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, producer, logger)
	userService := service.NewUserService(userRepo, orderRepo)
	dashboardService := service.NewDashboardService(orderRepo, userRepo, productRepo, summaryCache, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			if err := mongoClient.Ping(c.Request.Context(), nil); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/products", catalogHandler.ListProducts)
		api.GET("/products/:id", catalogHandler.GetProduct)
		api.GET("/categories", catalogHandler.ListCategories)

		authorized := api.Group("", middleware.RequireAuth(cfg.JWTSecret))
		{
			authorized.GET("/users/me", userHandler.Me)

			authorized.GET("/cart", cartHandler.Get)
			authorized.POST("/cart", cartHandler.Set)
			authorized.DELETE("/cart", cartHandler.Clear)

			authorized.GET("/orders", orderHandler.ListMine)
			authorized.POST("/orders/checkout", orderHandler.Checkout)

			admin := authorized.Group("/admin", middleware.RequireAdmin())
			{
				admin.GET("/summary", dashboardHandler.Summary)

				admin.POST("/products", catalogHandler.CreateProduct)
				admin.PUT("/products/:id", catalogHandler.UpdateProduct)
				admin.DELETE("/products/:id", catalogHandler.DeleteProduct)
				admin.POST("/categories", catalogHandler.CreateCategory)

				admin.GET("/orders", orderHandler.ListAll)
				admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

				admin.GET("/users", userHandler.List)
				admin.GET("/users/:id", userHandler.Get)
				admin.PUT("/users/:id", userHandler.Update)
				admin.PUT("/users/:id/block", userHandler.Block)
				admin.DELETE("/users/:id", userHandler.Delete)
			}
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
