package main

import (
	"fmt"
	"net/http"
	"os"

	"ledgerspace/internal/cache"
	"ledgerspace/internal/config"
	"ledgerspace/internal/database"
	"ledgerspace/internal/handlers"
	"ledgerspace/internal/logger"
	"ledgerspace/internal/middleware"
	"ledgerspace/internal/services"
	"ledgerspace/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ledgerspace/internal/docs" // Import swagger docs
)

// @title           Ledgerspace API
// @version         1.0
// @description     Ledgerspace is a shared expense tracker: personal and shared workspaces with invite codes, income and expense tracking, and aggregate statistics.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validation tags
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Transaction list cache
	txCache, err := cache.NewTransactionCache(appConfig.CacheMaxRows)
	if err != nil {
		return fmt.Errorf("failed to create transaction cache: %w", err)
	}
	defer txCache.Close()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	workspaceService := services.NewWorkspaceService(db)
	auditService := services.NewAuditService(db, workspaceService)
	transactionService := services.NewTransactionService(db, workspaceService, auditService, txCache)
	paymentMethodService := services.NewPaymentMethodService(db, workspaceService)
	statsService := services.NewStatsService(transactionService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(paymentMethodService)
	statsHandler := handlers.NewStatsHandler(statsService)
	logHandler := handlers.NewLogHandler(auditService)
	categoryHandler := handlers.NewCategoryHandler()

	// Initialize Gin router
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		if err := dbManager.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Workspace routes
	workspaces := protected.Group("/workspaces")
	workspaces.POST("", workspaceHandler.Create)
	workspaces.GET("", workspaceHandler.List)
	workspaces.POST("/join", workspaceHandler.Join)
	workspaces.GET("/active", workspaceHandler.GetActive)
	workspaces.POST("/:id/switch", workspaceHandler.SwitchActive)
	workspaces.GET("/:id/members", workspaceHandler.GetMembers)
	workspaces.GET("/:id/transactions", transactionHandler.ListByWorkspace)
	workspaces.POST("/:id/payment-methods", paymentMethodHandler.Create)
	workspaces.GET("/:id/payment-methods", paymentMethodHandler.List)
	workspaces.GET("/:id/stats/summary", statsHandler.Summary)
	workspaces.GET("/:id/stats/categories", statsHandler.Categories)
	workspaces.GET("/:id/stats/monthly", statsHandler.Monthly)
	workspaces.GET("/:id/logs", logHandler.List)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Category suggestions
	protected.GET("/categories/defaults", categoryHandler.Defaults)

	log.Infof("Starting Ledgerspace backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
