package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rallycommand-api/config"
	"rallycommand-api/controllers"
	"rallycommand-api/middleware"
	"rallycommand-api/repositories"
	"rallycommand-api/services"
)

// SetupCORS allows the browser frontend to call the API from another origin.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, store repositories.Store, cfg *config.Config, emailService *services.EmailService) {
	// Services
	ledger := services.NewLedger(store, emailService)
	integrity := services.NewIntegrityService(store)
	stocktake := services.NewStocktakeService(store, ledger)
	transfer := services.NewTransferService(store)

	// Controllers
	authController := controllers.NewAuthController(store, cfg.JWTSecret, emailService)
	vehicleController := controllers.NewVehicleController(store, integrity)
	inventoryController := controllers.NewInventoryController(store, integrity)
	usageController := controllers.NewUsageController(store, ledger)
	setupController := controllers.NewSetupController(store)
	setupGroupController := controllers.NewSetupGroupController(store, integrity)
	repairController := controllers.NewRepairController(store, ledger)
	stocktakeController := controllers.NewStocktakeController(store, stocktake)
	accountController := controllers.NewAccountController(store, integrity, transfer)
	feedbackController := controllers.NewFeedbackController(store)
	dashboardController := controllers.NewDashboardController(store)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	api := r.Group("/api")

	// Auth routes (public, rate limited)
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/me", authController.Me)

		// Vehicle routes
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleController.List)
			vehicles.POST("", vehicleController.Create)
			vehicles.GET("/:id", vehicleController.Get)
			vehicles.PUT("/:id", vehicleController.Update)
			vehicles.DELETE("/:id", vehicleController.Delete)
		}

		// Inventory routes
		inventory := protected.Group("/inventory")
		{
			inventory.GET("", inventoryController.List)
			inventory.POST("", inventoryController.Create)
			inventory.GET("/:id", inventoryController.Get)
			inventory.PUT("/:id", inventoryController.Update)
			inventory.DELETE("/:id", inventoryController.Delete)
		}

		// Usage log routes
		usage := protected.Group("/usage")
		{
			usage.POST("", usageController.Record)
			usage.GET("/:item_id", usageController.History)
		}

		// Setup routes
		setups := protected.Group("/setups")
		{
			setups.GET("", setupController.List)
			setups.POST("", setupController.Create)
			setups.GET("/vehicle/:vehicle_id", setupController.ListByVehicle)
			setups.GET("/:id", setupController.Get)
			setups.PUT("/:id", setupController.Update)
			setups.DELETE("/:id", setupController.Delete)
		}

		// Setup group routes
		setupGroups := protected.Group("/setup-groups")
		{
			setupGroups.POST("", setupGroupController.Create)
			setupGroups.GET("/vehicle/:vehicle_id", setupGroupController.ListByVehicle)
			setupGroups.GET("/:id", setupGroupController.Get)
			setupGroups.GET("/:id/setups", setupGroupController.Setups)
			setupGroups.PUT("/:id", setupGroupController.Update)
			setupGroups.DELETE("/:id", setupGroupController.Delete)
		}

		// Repair log routes
		repairs := protected.Group("/repairs")
		{
			repairs.GET("", repairController.List)
			repairs.POST("", repairController.Create)
			repairs.GET("/vehicle/:vehicle_id", repairController.ListByVehicle)
			repairs.GET("/:id", repairController.Get)
			repairs.PUT("/:id", repairController.Update)
			repairs.DELETE("/:id", repairController.Delete)
		}

		// Stocktake routes
		stocktakes := protected.Group("/stocktakes")
		{
			stocktakes.GET("", stocktakeController.List)
			stocktakes.POST("", stocktakeController.Create)
			stocktakes.GET("/:id", stocktakeController.Get)
			stocktakes.POST("/:id/apply", stocktakeController.Apply)
			stocktakes.DELETE("/:id", stocktakeController.Delete)
		}

		// Dashboard routes
		protected.GET("/dashboard/stats", dashboardController.Stats)

		// Account routes
		account := protected.Group("/account")
		{
			account.PUT("", accountController.Update)
			account.DELETE("", accountController.Delete)
			account.GET("/export", accountController.Export)
			account.POST("/import", accountController.Import)
		}

		// Feedback routes
		feedback := protected.Group("/feedback")
		{
			feedback.GET("", feedbackController.List)
			feedback.POST("", feedbackController.Create)
		}
	}
}
