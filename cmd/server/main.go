package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/incentive-api/internal/config"
	"github.com/staffdesk/incentive-api/internal/database"
	"github.com/staffdesk/incentive-api/internal/handlers"
	"github.com/staffdesk/incentive-api/internal/middleware"
	"github.com/staffdesk/incentive-api/internal/repository"
	"github.com/staffdesk/incentive-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the main admin when bootstrap credentials are configured
	if err := database.SeedMainAdmin(database.GetDB(), cfg); err != nil {
		log.Fatalf("Failed to seed main admin: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	incentiveRepo := repository.NewIncentiveRepository(database.GetDB())
	adminRepo := repository.NewAdminRepository(database.GetDB())
	adminTaskRepo := repository.NewAdminTaskRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	taskService := services.NewTaskService(taskRepo, userRepo)
	incentiveService := services.NewIncentiveService(incentiveRepo, userRepo)
	reportService := services.NewReportService(taskRepo, incentiveRepo)
	adminService := services.NewAdminService(adminRepo, cfg.JWTSecret, cfg.TokenTTL)
	adminTaskService := services.NewAdminTaskService(adminTaskRepo, adminRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	incentiveHandler := handlers.NewIncentiveHandler(incentiveService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService)
	adminTaskHandler := handlers.NewAdminTaskHandler(adminTaskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Incentive API is running",
		})
	})

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	requireAdminAuth := middleware.RequireAdminAuth(cfg.JWTSecret)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// User directory routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/stats", userHandler.GetUserStats)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/incentives", incentiveHandler.ListUserIncentives)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/assign", taskHandler.AssignTask)
			tasks.GET("/all", taskHandler.ListAllTasks)
			tasks.GET("/analytics", taskHandler.GetAnalytics)
			tasks.GET("/:id", taskHandler.GetTaskDetails)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Incentive routes (protected)
		incentives := api.Group("/incentives")
		incentives.Use(requireAuth)
		{
			incentives.GET("", incentiveHandler.ListAllIncentives)
			incentives.POST("", incentiveHandler.CreateIncentive)
			incentives.GET("/me", incentiveHandler.ListMyIncentives)
			incentives.DELETE("/:id", incentiveHandler.DeleteIncentive)
		}

		// Report routes (protected)
		api.GET("/reports", requireAuth, reportHandler.GetReport)

		// Admin portal routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			protected := admin.Group("")
			protected.Use(requireAdminAuth)
			{
				protected.GET("/profile", adminHandler.GetProfile)
				protected.GET("/sub-admins", adminHandler.ListSubAdmins)
				protected.POST("/sub-admins", adminHandler.CreateSubAdmin)
				protected.PUT("/sub-admins/:id", adminHandler.UpdateAdmin)
				protected.DELETE("/sub-admins/:id", adminHandler.DeleteAdmin)

				protected.GET("/tasks", adminTaskHandler.ListTasks)
				protected.POST("/tasks", adminTaskHandler.AssignTask)
				protected.PATCH("/tasks/:id/status", adminTaskHandler.UpdateStatus)
			}
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
