package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taskpal/taskpal-api/internal/config"
	"github.com/taskpal/taskpal-api/internal/database"
	"github.com/taskpal/taskpal-api/internal/handlers"
	"github.com/taskpal/taskpal-api/internal/jobs"
	"github.com/taskpal/taskpal-api/internal/mailer"
	"github.com/taskpal/taskpal-api/internal/middleware"
	"github.com/taskpal/taskpal-api/internal/notify"
	"github.com/taskpal/taskpal-api/internal/repository"
	"github.com/taskpal/taskpal-api/internal/services"
)

func main() {
	// Load .env when present, then parse configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Outbound notifications: queue consumed by a single worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	smtpMailer := mailer.NewSMTPMailer(cfg)
	if !smtpMailer.Configured() {
		log.Println("SMTP not configured, notification emails will fail and be logged")
	}
	dispatcher := notify.NewDispatcher(smtpMailer, 128)
	dispatcher.Start(ctx)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, orgRepo, dispatcher, aiService)
	dashboardService := services.NewDashboardService(taskRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, orgService, cfg.JWTSecret)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	userHandler := handlers.NewUserHandler(orgService)
	taskHandler := handlers.NewTaskHandler(taskService, aiService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Start the reminder sweep
	sweep := jobs.NewReminderSweep(taskRepo, dispatcher)
	sweep.Start(ctx)

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskPal API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(cfg.JWTSecret), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		org := api.Group("/org")
		org.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			org.POST("/create", orgHandler.Create)
			org.POST("/join", orgHandler.Join)
			org.PATCH("/switch", orgHandler.Switch)
			org.GET("/me", orgHandler.ListMine)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			users.GET("", userHandler.List)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			tasks.POST("", taskHandler.Create)
			tasks.GET("", taskHandler.List)
			tasks.PATCH("/:id", taskHandler.Update)
			tasks.POST("/generate", taskHandler.Generate)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
