package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"job-board-api/config"
	"job-board-api/internal/app"
	"job-board-api/internal/database"
	"job-board-api/internal/mailer"
	"job-board-api/internal/server"
	"job-board-api/internal/services"
	"job-board-api/internal/storage/postgres"

	"github.com/go-playground/validator/v10"
)

// @title           Job Board API
// @version         1.0
// @description     A job board server: employers post jobs, candidates apply, applications move through a review workflow.

// @contact.name   API Support
// @contact.email  support@jobboard.local

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	validate := validator.New()

	// --- Repositories ---
	userRepo := postgres.NewUserRepo(dbPool)
	jobRepo := postgres.NewJobRepo(dbPool)
	applicationRepo := postgres.NewApplicationRepo(dbPool)

	// --- Services ---
	notifier := services.NewNotificationService(mailer.FromConfig(cfg.SMTP))
	authService := services.NewAuthService(userRepo, redisClient, cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	jobService := services.NewJobService(jobRepo)
	applicationService := services.NewApplicationService(dbPool, applicationRepo, jobRepo, userRepo, notifier)

	application := &app.Application{
		Config:             cfg,
		DBPool:             dbPool,
		RedisClient:        redisClient,
		Validator:          validate,
		AuthService:        authService,
		JobService:         jobService,
		ApplicationService: applicationService,
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Println("Shutting down server...")

	//Gin shutdowns on its own

	log.Println("Application gracefully stopped.")
}
