package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/autolot/dealership-backend/config"
	"github.com/autolot/dealership-backend/internal/app/controller"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/internal/app/service"
	"github.com/autolot/dealership-backend/internal/db"
	"github.com/autolot/dealership-backend/internal/middleware"
	"github.com/autolot/dealership-backend/internal/router"
	"github.com/autolot/dealership-backend/internal/scheduler"
	"github.com/autolot/dealership-backend/internal/storage"
	ws "github.com/autolot/dealership-backend/internal/websocket"
	"github.com/autolot/dealership-backend/pkg/logger"
	"github.com/autolot/dealership-backend/pkg/redis"
	"github.com/autolot/dealership-backend/pkg/telegram"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Dealership Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs token revocation; the server still runs without it.
	var tokenChecker middleware.TokenChecker
	var tokenRevoker controller.TokenRevoker
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
		tokenChecker = func(c *gin.Context, token string) (bool, error) {
			return redis.IsTokenBlacklisted(c.Request.Context(), token)
		}
		tokenRevoker = redis.BlacklistToken
	}

	// Telegram delivers lead alerts and promo broadcasts; optional as well.
	var notifier service.Notifier
	if cfg.Telegram.BotToken != "" {
		bot, err := telegram.NewClient(telegram.Config{
			BotToken:  cfg.Telegram.BotToken,
			BaseURL:   cfg.Telegram.BaseURL,
			AlertChat: cfg.Telegram.AlertChat,
			PromoChat: cfg.Telegram.PromoChat,
		})
		if err != nil {
			logger.Warn("Telegram disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			notifier = bot
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	vehicleRepo := repository.NewVehicleRepository(db.GetDB())
	customerRepo := repository.NewCustomerRepository(db.GetDB())
	testDriveRepo := repository.NewTestDriveRepository(db.GetDB())
	tradeInRepo := repository.NewTradeInRepository(db.GetDB())
	financingRepo := repository.NewFinancingRepository(db.GetDB())
	reconRepo := repository.NewReconciliationRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	customerService := service.NewCustomerService(customerRepo, db.GetDB())
	vehicleService := service.NewVehicleService(vehicleRepo)
	testDriveService := service.NewTestDriveService(testDriveRepo, vehicleRepo, customerService, notifier)
	tradeInService := service.NewTradeInService(tradeInRepo, customerService, notifier)
	financingService := service.NewFinancingService(financingRepo, customerService, notifier)
	saleService := service.NewSaleService(vehicleRepo, reconRepo, customerService, notifier)
	reportService := service.NewReportService(vehicleRepo, db.GetDB())

	// Live feed hub
	hub := ws.NewHub()
	go hub.Run()

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, tokenRevoker, cfg.JWT.AccessTokenExpiry)
	vehicleController := controller.NewVehicleController(vehicleService, hub)
	customerController := controller.NewCustomerController(customerService)
	testDriveController := controller.NewTestDriveController(testDriveService)
	tradeInController := controller.NewTradeInController(tradeInService)
	financingController := controller.NewFinancingController(financingService)
	saleController := controller.NewSaleController(saleService, vehicleService, hub)
	reportController := controller.NewReportController(reportService)
	marketingController := controller.NewMarketingController(vehicleService, notifier, hub)
	storefrontController := controller.NewStorefrontController(cfg.Dealership, vehicleService)
	uploadController := controller.NewUploadController(s3Storage)
	feedController := controller.NewFeedController(hub, cfg.CORS.AllowedOrigins)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, tokenChecker)

	// Nightly days-on-lot counter
	lotScheduler := scheduler.NewLotScheduler(vehicleRepo)
	if err := lotScheduler.Start(); err != nil {
		logger.Error("Failed to start lot scheduler", err)
	}
	defer lotScheduler.Stop()

	r := router.NewRouter(
		authController,
		vehicleController,
		customerController,
		testDriveController,
		tradeInController,
		financingController,
		saleController,
		reportController,
		marketingController,
		storefrontController,
		uploadController,
		feedController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
