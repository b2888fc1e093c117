package main

import (
	"fmt"
	"net/http"
	"os"

	"trackly/internal/config"
	"trackly/internal/database"
	"trackly/internal/handlers"
	"trackly/internal/logger"
	"trackly/internal/middleware"
	"trackly/internal/services"
	"trackly/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "trackly/internal/docs" // Import swagger docs
)

// @title           Trackly API
// @version         1.0
// @description     Trackly combines job-application tracking with personal finance: income, expenses, budgets, planned expenses and savings goals.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	savingsService := services.NewSavingsService(db)
	incomeService := services.NewIncomeService(db, savingsService)
	expenseService := services.NewExpenseService(db)
	budgetService := services.NewBudgetService(db)
	plannedExpenseService := services.NewPlannedExpenseService(db)
	summaryService := services.NewSummaryService(db)
	applicationService := services.NewJobApplicationService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	plannedExpenseHandler := handlers.NewPlannedExpenseHandler(plannedExpenseService, auditService)
	savingsHandler := handlers.NewSavingsHandler(savingsService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService, savingsService)
	applicationHandler := handlers.NewJobApplicationHandler(applicationService, auditService)

	// Initialize Gin router
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
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Income routes
	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/status", budgetHandler.GetBudgetStatus)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Planned expense routes
	planned := protected.Group("/planned-expenses")
	planned.POST("", plannedExpenseHandler.CreatePlannedExpense)
	planned.GET("", plannedExpenseHandler.GetPlannedExpenses)
	planned.DELETE("/:id", plannedExpenseHandler.DeletePlannedExpense)

	// Savings goal routes
	goals := protected.Group("/savings-goals")
	goals.POST("", savingsHandler.CreateGoal)
	goals.GET("", savingsHandler.GetGoals)
	goals.GET("/:id", savingsHandler.GetGoal)
	goals.PUT("/:id", savingsHandler.UpdateGoal)
	goals.POST("/:id/toggle", savingsHandler.ToggleGoal)
	goals.POST("/:id/contribute", savingsHandler.Contribute)
	goals.DELETE("/:id", savingsHandler.DeleteGoal)

	// Summary route
	protected.GET("/summary", summaryHandler.GetSummary)

	// Job application routes
	applications := protected.Group("/applications")
	applications.POST("", applicationHandler.CreateApplication)
	applications.GET("", applicationHandler.GetApplications)
	applications.GET("/stats", applicationHandler.GetStats)
	applications.GET("/:id", applicationHandler.GetApplication)
	applications.PUT("/:id", applicationHandler.UpdateApplication)
	applications.DELETE("/:id", applicationHandler.DeleteApplication)

	log.Infof("Starting Trackly backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
