package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	api "heavyrent-backend/internal/api/grpc"
	"heavyrent-backend/internal/api/grpc/interceptor"
	httpapi "heavyrent-backend/internal/api/http"
	"heavyrent-backend/internal/config"
	"heavyrent-backend/internal/events"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/repository/postgres"
	"heavyrent-backend/internal/security"
	"heavyrent-backend/internal/service"
	"heavyrent-backend/internal/storage"
	"heavyrent-backend/migrations"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HeavyRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http", cfg.GetServerAddress(), "grpc", cfg.GetGRPCAddress(), "public_url", cfg.Server.PublicURL)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		logger.Info("Database migrations applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db, cfg.QueryTimeout())

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())

	// Initialize Storage Service
	logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
	proofStore, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize mock storage", "error", err)
		log.Fatalf("Failed to initialize mock storage: %v", err)
	}
	proofPolicy := storage.NewProofPolicy(cfg.Storage.MaxFileSize, cfg.Storage.AllowedTypes)

	emailSvc := newEmailService(cfg)

	// Initialize Events
	var publisher events.Publisher = events.NewNopPublisher()
	if cfg.Events.AMQPURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			logger.Error("Failed to connect to message broker", "error", err)
			log.Fatalf("Failed to connect to message broker: %v", err)
		}
		logger.Info("Publishing booking events", "exchange", cfg.Events.Exchange)
	}
	defer publisher.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Initialize Services
	notifier := service.NewNotifier(store.AuthUserRepository, emailSvc, publisher, m, cfg.Email.OpsAddress)
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository)
	bookingSvc := service.NewBookingService(store.EquipmentRepository, store.BookingRepository, store.ProfileRepository, notifier, m, cfg.PaymentWindow())
	paymentSvc := service.NewPaymentService(store.BookingRepository, proofStore, proofPolicy, notifier, m, cfg.PaymentWindow())
	operatorSvc := service.NewOperatorService(store.BookingRepository, notifier, m)
	profileSvc := service.NewProfileService(store.ProfileRepository)
	authSvc := service.NewAuthService(
		store.AuthUserRepository,
		store.AuthCodeRepository,
		store.ProfileRepository,
		tokenManager,
		emailSvc,
		cfg.Server.PublicURL,
		cfg.AuthCodeTTL(),
	)

	// HTTP server for the customer flow
	router := httpapi.NewRouter(httpapi.Services{
		Equipment: equipmentSvc,
		Bookings:  bookingSvc,
		Payments:  paymentSvc,
		Operator:  operatorSvc,
		Profiles:  profileSvc,
		Auth:      authSvc,
	}, httpapi.Options{
		Metrics:        m,
		ExposeMetrics:  cfg.Metrics.Enabled,
		RequestTimeout: cfg.RequestTimeout(),
		SecureCookies:  strings.HasPrefix(cfg.Server.PublicURL, "https://"),
	})
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// gRPC server for operator tooling
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		log.Fatalf("Failed to listen: %v", err)
	}
	authInterceptor := interceptor.NewAuthInterceptor(tokenManager)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(authInterceptor.Unary()))
	api.RegisterOperatorServiceServer(grpcServer, api.NewOperatorHandler(paymentSvc, operatorSvc, proofStore.DownloadURL))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(api.OperatorServiceName, healthpb.HealthCheckResponse_SERVING)

	// Register reflection service for grpcurl
	reflection.Register(grpcServer)

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("gRPC server listening", "address", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("Server error", "error", err)
	}

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("HeavyRent Backend stopped")
}

func newEmailService(cfg *config.Config) service.EmailService {
	switch cfg.Email.Provider {
	case "smtp":
		logger.Info("Email via SMTP", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
		return service.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.Email.From, cfg.Email.FromName, cfg.Server.PublicURL)
	case "sendgrid":
		logger.Info("Email via SendGrid")
		return service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName, cfg.Server.PublicURL)
	default:
		logger.Info("Email is logged only")
		return service.NewLogEmailService(cfg.Server.PublicURL)
	}
}
