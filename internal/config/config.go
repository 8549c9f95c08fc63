package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Booking   BookingConfig   `yaml:"booking"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Events    EventsConfig    `yaml:"events"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig contains HTTP and gRPC listener settings
type ServerConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	GRPCPort         int    `yaml:"grpc_port"`
	PublicURL        string `yaml:"public_url"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"ssl_mode"`
	QueryTimeoutMs int    `yaml:"query_timeout_ms"`
	AutoMigrate    bool   `yaml:"auto_migrate"`
}

// SMTPConfig contains email service settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// EmailConfig selects the mail provider
type EmailConfig struct {
	Provider       string `yaml:"provider"` // "smtp", "sendgrid" or "log"
	From           string `yaml:"from"`
	FromName       string `yaml:"from_name"`
	OpsAddress     string `yaml:"ops_address"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
	AuthCodeExpiry     int    `yaml:"auth_code_expiry_minutes"`
}

// StorageConfig contains file storage settings for payment proofs
type StorageConfig struct {
	Type         string   `yaml:"type"`       // only "mock" (local filesystem) for now
	UploadDir    string   `yaml:"upload_dir"` // For mock storage
	BaseURL      string   `yaml:"base_url"`
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BookingConfig contains booking and payment rules
type BookingConfig struct {
	PaymentWindowHours int `yaml:"payment_window_hours"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireUnpaidBookings    string `yaml:"expire_unpaid_bookings"`
	ActivateStartedBookings string `yaml:"activate_started_bookings"`
	CompleteEndedBookings   string `yaml:"complete_ended_bookings"`
}

// EventsConfig contains the message broker settings. An empty URL disables publishing.
type EventsConfig struct {
	AMQPURL  string `yaml:"amqp_url"`
	Exchange string `yaml:"exchange"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Local .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("DB_AUTO_MIGRATE"); val != "" {
		c.Database.AutoMigrate = val == "true" || val == "1"
	}

	// SMTP
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}

	// Email
	if val := os.Getenv("EMAIL_PROVIDER"); val != "" {
		c.Email.Provider = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}
	if val := os.Getenv("EMAIL_OPS_ADDRESS"); val != "" {
		c.Email.OpsAddress = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.GRPCPort)
	}
	if val := os.Getenv("PUBLIC_URL"); val != "" {
		c.Server.PublicURL = val
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Events
	if val := os.Getenv("AMQP_URL"); val != "" {
		c.Events.AMQPURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = c.Server.Port + 1
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 || c.Server.GRPCPort == c.Server.Port {
		return fmt.Errorf("invalid gRPC port: %d", c.Server.GRPCPort)
	}
	if c.Server.RequestTimeoutMs == 0 {
		c.Server.RequestTimeoutMs = 15000
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.QueryTimeoutMs == 0 {
		c.Database.QueryTimeoutMs = 5000
	}
	if c.Database.QueryTimeoutMs < 0 {
		return fmt.Errorf("invalid query timeout: %d", c.Database.QueryTimeoutMs)
	}

	// Email validation
	switch c.Email.Provider {
	case "":
		c.Email.Provider = "log"
	case "log":
	case "smtp":
		if c.SMTP.Host == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.SMTP.Port)
		}
	case "sendgrid":
		if c.Email.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key is required")
		}
	default:
		return fmt.Errorf("unsupported email provider: %s", c.Email.Provider)
	}
	if c.Email.From == "" {
		c.Email.From = "no-reply@pakaryanheavyrent.co.id"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "PakaryanHeavyRent"
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 60 * 24 * 7
	}
	if c.JWT.AuthCodeExpiry == 0 {
		c.JWT.AuthCodeExpiry = 60 * 24
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = "mock"
	}
	if c.Storage.Type != "mock" {
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 5
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"image/jpeg", "image/png", "application/pdf"}
	}

	// Booking defaults
	if c.Booking.PaymentWindowHours == 0 {
		c.Booking.PaymentWindowHours = 24 // Transfer must be claimed within a day
	}
	if c.Booking.PaymentWindowHours < 0 {
		return fmt.Errorf("invalid payment window: %d", c.Booking.PaymentWindowHours)
	}

	// Scheduler defaults
	if c.Scheduler.ExpireUnpaidBookings == "" {
		c.Scheduler.ExpireUnpaidBookings = "0 */15 * * * *" // Every 15 minutes
	}
	if c.Scheduler.ActivateStartedBookings == "" {
		c.Scheduler.ActivateStartedBookings = "0 5 0 * * *" // 00:05 UTC
	}
	if c.Scheduler.CompleteEndedBookings == "" {
		c.Scheduler.CompleteEndedBookings = "0 10 0 * * *" // 00:10 UTC
	}

	// Events defaults
	if c.Events.Exchange == "" {
		c.Events.Exchange = "heavyrent.events"
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the operator gRPC server address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Database.QueryTimeoutMs) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutMs) * time.Millisecond
}

func (c *Config) PaymentWindow() time.Duration {
	return time.Duration(c.Booking.PaymentWindowHours) * time.Hour
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}

func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.JWT.RefreshTokenExpiry) * time.Minute
}

func (c *Config) AuthCodeTTL() time.Duration {
	return time.Duration(c.JWT.AuthCodeExpiry) * time.Minute
}
