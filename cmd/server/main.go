package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "leaseend-backend/internal/api/http"
	"leaseend-backend/internal/config"
	"leaseend-backend/internal/logger"
	"leaseend-backend/internal/repository/postgres"
	"leaseend-backend/internal/security"
	"leaseend-backend/internal/service"
	"leaseend-backend/internal/settlement"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local development secrets live in .env; absence is fine elsewhere.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Lease-End Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Services
	classifier := settlement.NewClassifier(settlement.Policy{
		MisuseKeywords:    cfg.Settlement.MisuseKeywords,
		FallbackCostCents: cfg.Settlement.FallbackRepairCostCents,
		CostTier:          settlement.CostTier(cfg.Settlement.CostTier),
	})
	leaseEndSvc := service.NewLeaseEndService(
		store.ProcessRepository,
		store.InspectionItemRepository,
		store.RenovationItemRepository,
		store.TimelineRepository,
		store.NotificationRepository,
		classifier,
		cfg.Settlement.StrictTransitions,
	)
	renovationSvc := service.NewRenovationService(
		store.RenovationItemRepository,
		store.ProcessRepository,
		leaseEndSvc,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP API
	handler := httpapi.NewHandler(leaseEndSvc, renovationSvc, noteSvc)
	router := mux.NewRouter()
	handler.RegisterRoutes(router, httpapi.AuthMiddleware(tokenManager))

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
