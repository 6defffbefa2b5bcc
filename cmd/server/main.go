package main

import (
	"coachdesk/coach-console/internal/api"
	"coachdesk/coach-console/internal/config"
	"coachdesk/coach-console/internal/repository/mongo"
	"coachdesk/coach-console/internal/service"
	"coachdesk/coach-console/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Coach Console API
// @version 1.0
// @description Backend for a fitness-coaching practice: students, kanban workflow, finances and the protocol editor.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Coach Console Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureStudentIndexes(ctx, appDB.Collection("students"))
		mongo.EnsureCoachIndexes(ctx, appDB.Collection("coaches"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	studentRepo := mongo.NewMongoStudentRepository(appDB)
	coachRepo := mongo.NewMongoCoachRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)

	// --- Seed Initial Data ---
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := mongo.SeedStudents(ctx, studentRepo); err != nil {
			log.Printf("WARN: Failed to seed students: %v", err)
		}
		cancel()
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(coachRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	studentService := service.NewStudentService(studentRepo, cfg.Intake.BaseURL, cfg.Intake.AllowResubmission)
	dashboardService := service.NewDashboardService(studentRepo)
	protocolService := service.NewProtocolService(templateRepo, fileStorage)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, studentService, dashboardService, protocolService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
