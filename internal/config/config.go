package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Database       DatabaseConfig       `yaml:"database"`
	JWT            JWTConfig            `yaml:"jwt"`
	Verification   VerificationConfig   `yaml:"verification"`
	SendGrid       SendGridConfig       `yaml:"sendgrid"`
	ProductService ServiceClientConfig  `yaml:"product_service"`
	AuthService    ServiceClientConfig  `yaml:"auth_service"`
	Log            LogConfig            `yaml:"log"`
	Scheduler      SchedulerConfig      `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains token validation settings. Tokens are minted by the
// auth service with the same shared secret.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// VerificationConfig contains verification code settings
type VerificationConfig struct {
	TTLSeconds int    `yaml:"ttl_seconds"`
	Mode       string `yaml:"mode"`      // "log" (dev) or "email" (sendgrid)
	Channel    string `yaml:"channel"`   // contact handle: "phone" or "email"
	TestCode   string `yaml:"test_code"` // dev-only universal code, empty in production
}

// SendGridConfig contains email delivery settings for verification codes
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// ServiceClientConfig contains settings for a remote collaborator service
type ServiceClientConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReconcileStockSync string `yaml:"reconcile_stock_sync"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

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

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}

	// Collaborator services
	if val := os.Getenv("PRODUCT_SERVICE_URL"); val != "" {
		c.ProductService.BaseURL = val
	}
	if val := os.Getenv("AUTH_SERVICE_URL"); val != "" {
		c.AuthService.BaseURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.ProductService.BaseURL == "" {
		return fmt.Errorf("product service base URL is required")
	}
	if c.AuthService.BaseURL == "" {
		return fmt.Errorf("auth service base URL is required")
	}
	if c.ProductService.TimeoutSeconds <= 0 {
		c.ProductService.TimeoutSeconds = 10
	}
	if c.AuthService.TimeoutSeconds <= 0 {
		c.AuthService.TimeoutSeconds = 10
	}

	// Verification defaults
	if c.Verification.TTLSeconds <= 0 {
		c.Verification.TTLSeconds = 300
	}
	if c.Verification.Mode == "" {
		c.Verification.Mode = "log"
	}
	if c.Verification.Mode != "log" && c.Verification.Mode != "email" {
		return fmt.Errorf("invalid verification mode: %s", c.Verification.Mode)
	}
	if c.Verification.Channel == "" {
		c.Verification.Channel = "phone"
	}
	if c.Verification.Channel != "phone" && c.Verification.Channel != "email" {
		return fmt.Errorf("invalid verification channel: %s", c.Verification.Channel)
	}
	if c.Verification.Mode == "email" && c.SendGrid.APIKey == "" {
		return fmt.Errorf("sendgrid api key is required in email verification mode")
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Scheduler defaults
	if c.Scheduler.ReconcileStockSync == "" {
		c.Scheduler.ReconcileStockSync = "0 */10 * * * *" // every 10 minutes
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

// VerificationTTL returns the code lifetime as a duration
func (c *Config) VerificationTTL() time.Duration {
	return time.Duration(c.Verification.TTLSeconds) * time.Second
}

// Timeout returns the client request timeout as a duration
func (s *ServiceClientConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
