package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloud30/cloud30-sales-api/config"
	"github.com/cloud30/cloud30-sales-api/controllers"
	"github.com/cloud30/cloud30-sales-api/logging"
	"github.com/cloud30/cloud30-sales-api/metrics"
	"github.com/cloud30/cloud30-sales-api/middleware"
	"github.com/cloud30/cloud30-sales-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	appMetrics := metrics.Registry("cloud30")

	logger.Info("starting Cloud30 sales API", "env", cfg.GoEnv)

	// External-service clients are built once per process and shared.
	if _, err := services.InitSheetService(context.Background(), cfg, logger, appMetrics); err != nil {
		log.Fatalf("Failed to initialize tabular store: %v", err)
	}
	if _, err := services.InitS3Service(cfg, logger, appMetrics); err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}
	services.InitPaystackService(cfg, logger, appMetrics)
	services.InitMailService(cfg, logger, appMetrics)
	services.InitNotionService(cfg, logger)

	controllers.Init(logger, appMetrics)

	// Consistency sweep: repairs orders a verified payment left Pending and
	// reports duplicate customers.
	sweep := services.NewReconcileService(
		services.GetTabularStore(),
		services.NewOrderService(services.GetTabularStore(), logger),
		logger,
		appMetrics,
	)
	if cfg.ReconcileSchedule != "" {
		if err := sweep.StartScheduler(cfg.ReconcileSchedule); err != nil {
			log.Fatalf("Failed to start reconciliation scheduler: %v", err)
		}
		defer sweep.Stop()
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSAllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		protected := v1.Group("")
		protected.Use(middleware.EnsureValidToken(cfg))
		{
			protected.POST("/orders", controllers.CreateOrder)
			protected.GET("/orders/:id", controllers.GetOrder)

			protected.POST("/payments", controllers.RecordPayment)
			protected.POST("/payments/verify", controllers.VerifyPayment)

			protected.POST("/invoices", controllers.GenerateInvoice)
			protected.GET("/invoices/:id/link", controllers.GetInvoiceLink)

			protected.POST("/messages", controllers.SendMessage)
			protected.GET("/activity", controllers.GetActivity)
			protected.POST("/reconcile", controllers.RunReconciliation)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cloud30 sales API is running",
	})
}
