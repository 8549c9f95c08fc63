package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"heavyrent-backend/internal/config"
	"heavyrent-backend/internal/events"
	"heavyrent-backend/internal/jobs"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/repository/postgres"
	"heavyrent-backend/internal/scheduler"
	"heavyrent-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-unpaid-bookings', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HeavyRent Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db, cfg.QueryTimeout())

	var emailSvc service.EmailService
	switch cfg.Email.Provider {
	case "smtp":
		emailSvc = service.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.Email.From, cfg.Email.FromName, cfg.Server.PublicURL)
	case "sendgrid":
		emailSvc = service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName, cfg.Server.PublicURL)
	default:
		emailSvc = service.NewLogEmailService(cfg.Server.PublicURL)
	}

	var publisher events.Publisher = events.NewNopPublisher()
	if cfg.Events.AMQPURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			logger.Error("Failed to connect to message broker", "error", err)
			log.Fatalf("Failed to connect to message broker: %v", err)
		}
	}
	defer publisher.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	notifier := service.NewNotifier(store.AuthUserRepository, emailSvc, publisher, m, cfg.Email.OpsAddress)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.BookingRepository, notifier, m, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

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
	case "expire-unpaid-bookings":
		jobRunner.ExpireUnpaidBookings()
	case "activate-started-bookings":
		jobRunner.ActivateStartedBookings()
	case "complete-ended-bookings":
		jobRunner.CompleteEndedBookings()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - expire-unpaid-bookings\n")
		fmt.Printf("  - activate-started-bookings\n")
		fmt.Printf("  - complete-ended-bookings\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
