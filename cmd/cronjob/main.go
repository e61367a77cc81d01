package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"leaseend-backend/internal/config"
	"leaseend-backend/internal/jobs"
	"leaseend-backend/internal/logger"
	"leaseend-backend/internal/repository/postgres"
	"leaseend-backend/internal/scheduler"
	"leaseend-backend/internal/service"
	"leaseend-backend/internal/settlement"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-timeline-reminders', 'all-daily')")
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
	logger.Info("Starting Lease-End Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	emailService := service.NewSendGridEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)
	classifier := settlement.NewClassifier(settlement.Policy{
		MisuseKeywords:    cfg.Settlement.MisuseKeywords,
		FallbackCostCents: cfg.Settlement.FallbackRepairCostCents,
		CostTier:          settlement.CostTier(cfg.Settlement.CostTier),
	})
	leaseEndService := service.NewLeaseEndService(
		store.ProcessRepository,
		store.InspectionItemRepository,
		store.RenovationItemRepository,
		store.TimelineRepository,
		store.NotificationRepository,
		classifier,
		cfg.Settlement.StrictTransitions,
	)
	notificationService := service.NewNotificationService(store.NotificationRepository)

	jobServices := &jobs.Services{
		Email:        emailService,
		LeaseEnd:     leaseEndService,
		Notification: notificationService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "send-timeline-reminders":
		jobRunner.SendTimelineReminders()
	case "mark-stalled-processes":
		jobRunner.MarkStalledProcesses()
	case "send-refund-statements":
		jobRunner.SendRefundStatements()
	case "all-daily":
		jobRunner.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - send-timeline-reminders\n")
		fmt.Printf("  - mark-stalled-processes\n")
		fmt.Printf("  - send-refund-statements\n")
		fmt.Printf("  - all-daily\n")
		os.Exit(1)
	}
}
