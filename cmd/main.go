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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/auth"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/events"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/handler"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/repository"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/scheduling"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/service"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/pkg/config"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/pkg/middleware"
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
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.String("order_table", cfg.OrderTableName))

	// Initialize components
	var store repository.Store
	switch cfg.StoreDriver {
	case "memory":
		store = repository.NewMemoryStore()
	default:
		dynamoClient, err := repository.NewDynamoDBClient(cfg)
		if err != nil {
			log.Fatal("Failed to create DynamoDB client:", err)
		}
		store = repository.NewDynamoStore(dynamoClient, cfg.OrderTableName, cfg.StoreTimeout)
	}

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.NotificationTopic, logger)
	defer producer.Close()

	var scheduler scheduling.Checker = scheduling.AlwaysAvailable{}
	if cfg.SchedulerURL != "" {
		scheduler = scheduling.NewHTTPChecker(cfg.SchedulerURL, cfg.SchedulerTimeout)
	}

	gate := auth.NewGate(cfg.JWTSecret, cfg.TokenTTL)
	accounts := map[string]handler.Account{
		cfg.OwnerUser: {Password: cfg.OwnerPassword, Role: auth.RoleOwner},
		cfg.StaffUser: {Password: cfg.StaffPassword, Role: auth.RoleStaff},
	}

	orderService := service.NewOrderService(store, scheduler, producer, logger)
	dashboardService := service.NewDashboardService(store, logger)

	orderHandler := handler.NewOrderHandler(orderService, logger)
	trackingHandler := handler.NewTrackingHandler(orderService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	authHandler := handler.NewAuthHandler(gate, accounts, logger)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())

	staffOnly := middleware.RequireRole(gate, auth.StaffRoles...)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/login", authHandler.Login)
		v1.GET("/track/:token", trackingHandler.Track)

		v1.POST("/orders", staffOnly, orderHandler.CreateOrder)
		v1.GET("/orders/:id", staffOnly, orderHandler.GetOrder)
		v1.PATCH("/orders/:id/status", staffOnly, orderHandler.SetStatus)
		v1.POST("/orders/:id/payments", staffOnly, orderHandler.RecordPayment)

		v1.GET("/dashboard", staffOnly, dashboardHandler.GetDashboard)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "bakery-fulfillment",
			"store":   cfg.StoreDriver,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
