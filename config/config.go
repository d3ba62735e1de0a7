package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	REQUEST_TIMEOUT=10s
//	RATE_LIMIT_PER_MINUTE=60
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=salesdata
//	POSTGRES_SSLMODE=disable
//	POSTGRES_BACKEND_ROLE=sales_backend
//	SALES_TIMEZONE=Europe/Lisbon
//	SALES_MAX_RANGE_DAYS=730
//	LOG_LEVEL=info
//	LOG_PRETTY=false
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Sales    SalesConfig    // Date range rules of the sales endpoint
	Log      LogConfig      // Logger settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout     time.Duration // Deadline applied to every request context
	RateLimitPerMinute int           // Requests allowed per client IP per minute
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
//   - BackendRole: role assumed for aggregate reads so they bypass
//     per-user row level security. Empty means the connecting user.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	BackendRole string
	URL         string
}

// SalesConfig configures how DD-MM-YYYY dates are turned into instants.
type SalesConfig struct {
	Timezone     string // IANA name or "Local"
	MaxRangeDays int
}

// Location resolves Timezone, falling back to time.Local.
func (s SalesConfig) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "salesdata")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_BACKEND_ROLE", "")

	viper.SetDefault("SALES_TIMEZONE", "Local")
	viper.SetDefault("SALES_MAX_RANGE_DAYS", 730)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:        viper.GetString("POSTGRES_HOST"),
			Port:        viper.GetInt("POSTGRES_PORT"),
			User:        viper.GetString("POSTGRES_USER"),
			Password:    viper.GetString("POSTGRES_PASSWORD"),
			DBName:      viper.GetString("POSTGRES_DB"),
			SSLMode:     viper.GetString("POSTGRES_SSLMODE"),
			BackendRole: viper.GetString("POSTGRES_BACKEND_ROLE"),
		},
		Sales: SalesConfig{
			Timezone:     viper.GetString("SALES_TIMEZONE"),
			MaxRangeDays: viper.GetInt("SALES_MAX_RANGE_DAYS"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the postgres:// connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	if problems := AppConfig.Problems(); len(problems) > 0 {
		log.Fatalf("❌ Invalid or missing environment variables: %v\n", problems)
	}
}

// Problems lists the configuration keys that are missing or invalid.
func (c Config) Problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Server.RequestTimeout <= 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}
	if c.Server.RateLimitPerMinute <= 0 {
		missing = append(missing, "RATE_LIMIT_PER_MINUTE")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if c.Sales.MaxRangeDays <= 0 {
		missing = append(missing, "SALES_MAX_RANGE_DAYS")
	}
	if _, err := c.Sales.Location(); err != nil {
		missing = append(missing, "SALES_TIMEZONE")
	}

	return missing
}
