package router

import (
	"github.com/autolot/dealership-backend/config"
	"github.com/autolot/dealership-backend/internal/app/controller"
	"github.com/autolot/dealership-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController       *controller.AuthController
	vehicleController    *controller.VehicleController
	customerController   *controller.CustomerController
	testDriveController  *controller.TestDriveController
	tradeInController    *controller.TradeInController
	financingController  *controller.FinancingController
	saleController       *controller.SaleController
	reportController     *controller.ReportController
	marketingController  *controller.MarketingController
	storefrontController *controller.StorefrontController
	uploadController     *controller.UploadController
	feedController       *controller.FeedController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	vehicleController *controller.VehicleController,
	customerController *controller.CustomerController,
	testDriveController *controller.TestDriveController,
	tradeInController *controller.TradeInController,
	financingController *controller.FinancingController,
	saleController *controller.SaleController,
	reportController *controller.ReportController,
	marketingController *controller.MarketingController,
	storefrontController *controller.StorefrontController,
	uploadController *controller.UploadController,
	feedController *controller.FeedController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		vehicleController:    vehicleController,
		customerController:   customerController,
		testDriveController:  testDriveController,
		tradeInController:    tradeInController,
		financingController:  financingController,
		saleController:       saleController,
		reportController:     reportController,
		marketingController:  marketingController,
		storefrontController: storefrontController,
		uploadController:     uploadController,
		feedController:       feedController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Dealership API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		// Public storefront.
		v1.GET("/profile", r.storefrontController.GetProfile)
		v1.GET("/featured", r.storefrontController.GetFeaturedVehicles)
		v1.GET("/feed", r.feedController.Connect)

		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", r.vehicleController.ListVehicles)
			vehicles.GET("/:id", r.vehicleController.GetVehicleByID)
		}

		v1.POST("/test-drives", r.testDriveController.CreateTestDrive)
		v1.POST("/trade-ins", r.tradeInController.CreateTradeIn)
		v1.POST("/financing", r.financingController.CreateApplication)

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		// Staff dashboard.
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole("staff", "admin"))
		{
			admin.POST("/auth/register",
				r.authMiddleware.RequireRole("admin"),
				r.authController.Register,
			)

			adminVehicles := admin.Group("/vehicles")
			{
				adminVehicles.GET("/aggregates", r.vehicleController.GetAggregates)
				adminVehicles.POST("", r.vehicleController.CreateVehicle)
				adminVehicles.PUT("/:id", r.vehicleController.UpdateVehicle)
				adminVehicles.PATCH("/:id/stock", r.vehicleController.SetInStock)
				adminVehicles.PATCH("/:id/sold", r.vehicleController.SetSold)
				adminVehicles.PATCH("/:id/featured", r.vehicleController.SetFeatured)
				adminVehicles.POST("/:id/promote", r.marketingController.PromoteVehicle)
				adminVehicles.DELETE("/:id",
					r.authMiddleware.RequireRole("admin"),
					r.vehicleController.DeleteVehicle,
				)
			}

			customers := admin.Group("/customers")
			{
				customers.GET("", r.customerController.ListCustomers)
				customers.GET("/:id", r.customerController.GetCustomerByID)
				customers.POST("", r.customerController.CreateCustomer)
				customers.PUT("/:id", r.customerController.UpdateCustomer)
			}

			testDrives := admin.Group("/test-drives")
			{
				testDrives.GET("", r.testDriveController.ListTestDrives)
				testDrives.GET("/:id", r.testDriveController.GetTestDriveByID)
				testDrives.PATCH("/:id/status", r.testDriveController.UpdateTestDriveStatus)
			}

			tradeIns := admin.Group("/trade-ins")
			{
				tradeIns.GET("", r.tradeInController.ListTradeIns)
				tradeIns.GET("/:id", r.tradeInController.GetTradeInByID)
				tradeIns.PATCH("/:id/status", r.tradeInController.UpdateTradeInStatus)
				tradeIns.POST("/:id/offer", r.tradeInController.MakeOffer)
			}

			financing := admin.Group("/financing")
			{
				financing.GET("", r.financingController.ListApplications)
				financing.GET("/:id", r.financingController.GetApplicationByID)
				financing.PATCH("/:id/status", r.financingController.UpdateApplicationStatus)
			}

			sales := admin.Group("/sales")
			{
				sales.POST("", r.saleController.CompleteSale)
				sales.GET("/reconciliations", r.saleController.ListReconciliationTasks)
				sales.POST("/reconciliations/:id/resolve", r.saleController.ResolveReconciliationTask)
			}

			admin.GET("/dashboard", r.reportController.GetDashboard)
			admin.GET("/reports/inventory", r.reportController.ExportInventory)
			admin.GET("/reports/sales", r.reportController.ExportSales)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
