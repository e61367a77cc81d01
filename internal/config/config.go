package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
	JWT        JWTConfig        `yaml:"jwt"`
	Log        LogConfig        `yaml:"log"`
	Settlement SettlementConfig `yaml:"settlement"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
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

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains token validation settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SettlementConfig contains the classification policy knobs and workflow
// behavior of the lease-end engine.
type SettlementConfig struct {
	FallbackRepairCostCents int64    `yaml:"fallback_repair_cost_cents"`
	MisuseKeywords          []string `yaml:"misuse_keywords"`
	CostTier                string   `yaml:"cost_tier"` // "min", "avg" or "max"
	StrictTransitions       bool     `yaml:"strict_transitions"`
	StalledAfterDays        int      `yaml:"stalled_after_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SendTimelineReminders string `yaml:"send_timeline_reminders"`
	MarkStalledProcesses  string `yaml:"mark_stalled_processes"`
	SendRefundStatements  string `yaml:"send_refund_statements"`
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

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
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

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Settlement
	if val := os.Getenv("SETTLEMENT_FALLBACK_COST_CENTS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Settlement.FallbackRepairCostCents)
	}
	if val := os.Getenv("SETTLEMENT_STRICT_TRANSITIONS"); val != "" {
		c.Settlement.StrictTransitions = strings.EqualFold(val, "true")
	}
}

// Validate checks if the configuration is valid
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

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Settlement defaults
	if c.Settlement.FallbackRepairCostCents == 0 {
		c.Settlement.FallbackRepairCostCents = 25000 // 250.00 default repair estimate
	}
	if c.Settlement.FallbackRepairCostCents < 0 {
		return fmt.Errorf("fallback repair cost must not be negative")
	}
	switch strings.ToLower(c.Settlement.CostTier) {
	case "", "avg":
		c.Settlement.CostTier = "avg"
	case "min", "max":
		c.Settlement.CostTier = strings.ToLower(c.Settlement.CostTier)
	default:
		return fmt.Errorf("invalid cost tier: %s", c.Settlement.CostTier)
	}
	if c.Settlement.StalledAfterDays <= 0 {
		c.Settlement.StalledAfterDays = 14
	}

	// Scheduler defaults
	if c.Scheduler.SendTimelineReminders == "" {
		c.Scheduler.SendTimelineReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.MarkStalledProcesses == "" {
		c.Scheduler.MarkStalledProcesses = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.SendRefundStatements == "" {
		c.Scheduler.SendRefundStatements = "0 30 8 * * *" // 8:30 AM UTC
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
