package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/healthpremium/backend/internal/config"
	"github.com/healthpremium/backend/internal/delivery/http"
	"github.com/healthpremium/backend/internal/domain"
	"github.com/healthpremium/backend/internal/logging"
	"github.com/healthpremium/backend/internal/metrics"
	"github.com/healthpremium/backend/internal/repository/artifact"
	"github.com/healthpremium/backend/internal/repository/postgres"
	"github.com/healthpremium/backend/internal/service"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := config.Load()

	logr, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	if envErr != nil {
		logr.Info("No .env file found, using system environment")
	}

	// Artifacts
	var (
		bundle       *artifact.Bundle
		modelYoung   domain.Model
		modelRest    domain.Model
		modelsHealth http.HealthChecker
	)
	if cfg.ModelBackend == config.BackendRemote {
		bundle, err = artifact.LoadScalers(cfg.ArtifactsDir)
		mlBridge := service.NewMLBridge(cfg.MLServiceURL, cfg.MLTimeout)
		modelYoung = mlBridge.Model(domain.AgeBandYoung)
		modelRest = mlBridge.Model(domain.AgeBandRest)
		modelsHealth = mlBridge
		logr.Info("Using remote model server", zap.String("url", cfg.MLServiceURL))
	} else {
		bundle, err = artifact.Load(cfg.ArtifactsDir)
		if err == nil {
			modelYoung, modelRest = bundle.Models()
		}
	}
	if err != nil {
		logr.Fatal("Failed to load model artifacts", zap.String("dir", cfg.ArtifactsDir), zap.Error(err))
	}
	scalerYoung, scalerRest := bundle.ScalingParams()

	// Dependency Injection: Repositories
	predictionRepo, closeRepo := openRepository(cfg, logr)
	defer closeRepo()

	// Dependency Injection: Services
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	predictor := service.NewPredictorFromArtifacts(modelYoung, modelRest, scalerYoung, scalerRest)
	premiumSvc := service.NewPremiumService(predictor, predictionRepo, metrics.New(reg), logr)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Premium Prediction API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, premiumSvc, modelsHealth, reg)

	// Graceful shutdown
	go func() {
		logr.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logr.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logr.Warn("Server forced to shutdown", zap.Error(err))
	}
	premiumSvc.WaitBackground()
	logr.Info("Server exited gracefully")
}

// openRepository connects to PostgreSQL when configured and falls back to
// the in-memory audit log otherwise
func openRepository(cfg *config.Config, logr *zap.Logger) (service.PredictionRepository, func()) {
	memory := func() (service.PredictionRepository, func()) {
		logr.Info("Recording predictions in memory only")
		return postgres.NewMemoryRepository(0), func() {}
	}

	if cfg.DatabaseURL == "" {
		return memory()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logr.Warn("Could not connect to database", zap.Error(err))
		return memory()
	}
	logr.Info("Connected to PostgreSQL")

	if cfg.MigrationsEnabled {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			pool.Close()
			logr.Warn("Could not apply migrations", zap.Error(err))
			return memory()
		}
	}

	return postgres.NewPostgresRepository(pool), pool.Close
}

func connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}
