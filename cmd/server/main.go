package main

import (
	"log"
	"net/http"

	"github.com/ceidev/taskboard/internal/config"
	"github.com/ceidev/taskboard/internal/constants"
	"github.com/ceidev/taskboard/internal/database"
	"github.com/ceidev/taskboard/internal/handlers"
	"github.com/ceidev/taskboard/internal/middleware"
	"github.com/ceidev/taskboard/internal/repository"
	"github.com/ceidev/taskboard/internal/services"
	"github.com/ceidev/taskboard/internal/storage"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
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

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Uploaded profile images
	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}
	r.Static("/uploads", cfg.UploadDir)

	// External verifiers; nil when unconfigured so development setups can
	// run without Google credentials
	var captcha services.CaptchaVerifier
	if cfg.RecaptchaSecret != "" {
		captcha = services.NewRecaptchaVerifier(cfg.RecaptchaSecret)
	} else {
		log.Println("RECAPTCHA_SECRET not set, captcha verification disabled")
	}
	var google services.IDTokenVerifier
	if cfg.GoogleClientID != "" {
		google = services.NewGoogleVerifier(cfg.GoogleClientID)
	} else {
		log.Println("GOOGLE_CLIENT_ID not set, google login disabled")
	}

	// Wire repositories, services, handlers
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTeamTaskRepository(db)

	authService := services.NewAuthService(userRepo, captcha, google, images)
	todoService := services.NewTodoService(todoRepo)
	teamService := services.NewTeamService(teamRepo)
	taskService := services.NewTeamTaskService(taskRepo, teamRepo)

	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Identity
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/google-login", authHandler.GoogleLogin)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		api.PUT("/profile/:username", authHandler.UpdateProfile)
		api.GET("/users/search", authHandler.SearchUser)

		// Personal todos
		api.GET("/todos/:username", todoHandler.ListTodos)
		api.POST("/todos", todoHandler.CreateTodo)
		api.PUT("/todos/:id", todoHandler.UpdateTodo)
		api.DELETE("/todos/:id", todoHandler.DeleteTodo)

		// Teams and membership
		api.POST("/teams", teamHandler.CreateTeam)
		api.GET("/users/:user_id/teams", teamHandler.ListUserTeams)
		api.GET("/teams/:team_id", teamHandler.GetTeamDetails)
		api.POST("/teams/:team_id/members", teamHandler.AddMember)
		api.DELETE("/teams/:team_id/members/:user_id", teamHandler.RemoveMember)
		api.DELETE("/teams/:team_id", teamHandler.DeleteTeam)

		// Team tasks
		api.POST("/teams/:team_id/tasks", taskHandler.CreateTask)
		api.GET("/teams/:team_id/tasks", taskHandler.ListTeamTasks)
		api.PUT("/tasks/:task_id/status", taskHandler.UpdateTaskStatus)
		api.PUT("/tasks/:task_id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:task_id", taskHandler.DeleteTask)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
