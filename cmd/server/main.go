package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/interviewprep/backend/internal/auth"
	"github.com/interviewprep/backend/internal/config"
	"github.com/interviewprep/backend/internal/handlers"
	"github.com/interviewprep/backend/internal/logger"
	"github.com/interviewprep/backend/internal/middlewares"
	"github.com/interviewprep/backend/internal/repositories"
	"github.com/interviewprep/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title InterviewPrep API
// @version 1.0
// @description API for browsing interview preparation content, tracking progress, and taking quizzes

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting InterviewPrep API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, zapLogger)
	categoryRepo := repositories.NewCategoryRepository(db, zapLogger)
	topicRepo := repositories.NewTopicRepository(db, zapLogger)
	lessonRepo := repositories.NewLessonRepository(db, zapLogger)
	quizRepo := repositories.NewQuizRepository(db, zapLogger)
	progressRepo := repositories.NewProgressRepository(db, zapLogger)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, zapLogger)
	contentService := services.NewContentService(categoryRepo, topicRepo, lessonRepo, quizRepo, progressRepo)
	progressService := services.NewProgressService(progressRepo, lessonRepo, cfg.RecentActivityLimit)
	quizService := services.NewQuizService(quizRepo, lessonRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, zapLogger)
	contentHandler := handlers.NewContentHandler(contentService, zapLogger)
	progressHandler := handlers.NewProgressHandler(progressService, zapLogger)
	quizHandler := handlers.NewQuizHandler(quizService, zapLogger)

	// Initialize auth middleware
	requireUser := auth.RequireUser(tokenGenerator)
	optionalUser := auth.OptionalUser(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(zapLogger))
	r.Use(middlewares.RecoveryMiddleware(zapLogger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api
	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, requireUser)
		contentHandler.RegisterRoutes(r, requireUser, optionalUser)
		progressHandler.RegisterRoutes(r, requireUser)
		quizHandler.RegisterRoutes(r, requireUser)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
