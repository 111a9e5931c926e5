// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables; the CLI
// overrides the scan and logging settings with its flags.
type Config struct {
	Scan      ScanConfig
	Reference ReferenceConfig
	Server    ServerConfig
	Security  SecurityConfig
	Logging   LoggingConfig
}

// ScanConfig holds input, output and scan limits.
type ScanConfig struct {
	// InputFile is the CSV to scan in CLI mode
	InputFile string `env:"INPUT_FILE" default:"data_quality_case_study.csv"`

	// OutputPath is the directory the cleaned CSV is written to
	OutputPath string `env:"OUTPUT_PATH" default:"."`

	// PhoneFormat is the canonical phone format: hyphen or paren
	PhoneFormat string `env:"PHONE_FORMAT" default:"hyphen"`

	// MaxFileSize is the largest accepted input in bytes (default: 100MB)
	MaxFileSize int64 `env:"SCAN_MAX_FILE_SIZE" default:"104857600"`

	// MaxConcurrent is the number of scans the server runs at once
	MaxConcurrent int `env:"SCAN_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a request waits for a scan slot
	MaxWaitTime time.Duration `env:"SCAN_MAX_WAIT_TIME" default:"10s"`

	// Timeout bounds a single scan
	Timeout time.Duration `env:"SCAN_TIMEOUT" default:"5m"`
}

// ReferenceConfig selects where state and zip reference data come from.
// When DatabaseURL is set the files are ignored.
type ReferenceConfig struct {
	// StatesFile is a JSON/YAML {name: code} file; empty uses the built-in table
	StatesFile string `env:"STATES_FILE"`

	// ZipsFile is a JSON/YAML {state: [zip, ...]} file
	ZipsFile string `env:"ZIPS_FILE" default:"additional_state_code_data.json"`

	// DatabaseURL is a PostgreSQL connection string
	DatabaseURL string `env:"REFERENCE_DATABASE_URL" envAlt:"DATABASE_URL"`

	// StatesTable has columns (name, code)
	StatesTable string `env:"REFERENCE_STATES_TABLE" default:"reference_states"`

	// ZipsTable has columns (state_code, zip)
	ZipsTable string `env:"REFERENCE_ZIPS_TABLE" default:"reference_zips"`

	// MaxConns bounds the reference pool
	MaxConns int `env:"REFERENCE_DB_MAX_CONNS" default:"4"`

	// LoadTimeout bounds connecting and loading
	LoadTimeout time.Duration `env:"REFERENCE_LOAD_TIMEOUT" default:"30s"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 5m)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 5m)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"5m"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey enables X-API-Key authentication on /api routes
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`

	// RateLimit is the number of /api requests a client may make per
	// RateWindow; 0 disables rate limiting (default: 100)
	RateLimit int `env:"RATE_LIMIT_REQUESTS" default:"100"`

	// RateWindow is the rate limit window (default: 1m)
	RateWindow time.Duration `env:"RATE_LIMIT_WINDOW" default:"1m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// UseDatabase reports whether reference data comes from PostgreSQL.
func (c *ReferenceConfig) UseDatabase() bool {
	return c.DatabaseURL != ""
}
