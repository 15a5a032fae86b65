package main

import (
	"log"
	"time"

	"github.com/twende-org/mauzo/config"
	"github.com/twende-org/mauzo/internal/handler"
	"github.com/twende-org/mauzo/internal/middleware"
	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()

	database.Connect()

	log.Println("Running migrations...")
	err := database.DB.AutoMigrate(
		&models.User{},
		&models.LoginHistory{},
		&models.Business{},
		&models.Product{},
		&models.Seller{},
		&models.InventoryEntry{},
		&models.StockMovement{},
		&models.DispatchRecord{},
		&models.ProductionBatch{},
		&models.Expense{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	database.SeedAdmin()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	usersHandler := &handler.UsersHandler{}
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		adminRoutes.POST("/users", usersHandler.CreateUser)
		adminRoutes.GET("/users", usersHandler.ListUsers)
		adminRoutes.PUT("/users/:id", usersHandler.UpdateUser)
		adminRoutes.PUT("/users/:id/status", usersHandler.UpdateUserStatus)
		adminRoutes.PUT("/users/:id/password", usersHandler.ResetUserPassword)
		adminRoutes.GET("/login-history", usersHandler.GetLoginHistory)
	}

	productHandler := &handler.ProductHandler{}
	r.GET("/api/v1/products", middleware.AuthMiddleware(), productHandler.ListProducts)
	productRoutes := r.Group("/api/v1/products")
	productRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}

	sellerHandler := &handler.SellerHandler{}
	r.GET("/api/v1/sellers", middleware.AuthMiddleware(), sellerHandler.ListSellers)
	sellerRoutes := r.Group("/api/v1/sellers")
	sellerRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		sellerRoutes.POST("", sellerHandler.CreateSeller)
		sellerRoutes.PUT("/:id", sellerHandler.UpdateSeller)
		sellerRoutes.DELETE("/:id", sellerHandler.DeleteSeller)
	}

	inventoryHandler := &handler.InventoryHandler{}
	invRoutes := r.Group("/api/v1/inventory")
	invRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		invRoutes.GET("", inventoryHandler.GetStock)
		invRoutes.GET("/movements", inventoryHandler.ListMovements)
		invRoutes.GET("/alerts", inventoryHandler.GetLowStockAlerts)
		invRoutes.GET("/:id", inventoryHandler.GetProductStock)
		invRoutes.POST("/adjust", inventoryHandler.AdjustStock)
	}

	productionHandler := &handler.ProductionHandler{}
	productionRoutes := r.Group("/api/v1/production")
	productionRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		productionRoutes.GET("", productionHandler.ListProduction)
		productionRoutes.POST("", productionHandler.RecordProduction)
	}

	dispatchHandler := &handler.DispatchHandler{}
	dispatchRoutes := r.Group("/api/v1/dispatches")
	dispatchRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		dispatchRoutes.POST("", dispatchHandler.OpenDispatch)
		dispatchRoutes.GET("", dispatchHandler.ListDispatches)
		dispatchRoutes.POST("/:id/close", dispatchHandler.CloseDispatch)
	}
	r.POST("/api/v1/dispatches/reconcile", middleware.AuthMiddleware(models.RoleAdmin), dispatchHandler.Reconcile)

	expenseHandler := &handler.ExpenseHandler{}
	expenseRoutes := r.Group("/api/v1/expenses")
	expenseRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		expenseRoutes.POST("", expenseHandler.CreateExpense)
		expenseRoutes.GET("", expenseHandler.ListExpenses)
		expenseRoutes.PUT("/:id", expenseHandler.UpdateExpense)
		expenseRoutes.DELETE("/:id", expenseHandler.DeleteExpense)
	}

	reportHandler := &handler.ReportHandler{}
	reportRoutes := r.Group("/api/v1/reports")
	reportRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		reportRoutes.GET("/dashboard", reportHandler.GetDashboard)
		reportRoutes.GET("/sales", reportHandler.GetSalesReport)
	}

	businessHandler := &handler.BusinessHandler{}
	businessRoutes := r.Group("/api/v1/business")
	businessRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		businessRoutes.GET("", businessHandler.GetBusiness)
		businessRoutes.PUT("", businessHandler.UpdateBusiness)
	}

	publicHandler := &handler.PublicHandler{}
	r.GET("/api/v1/public/profile", publicHandler.GetBusinessProfile)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
