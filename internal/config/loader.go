package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/dataquality/internal/core"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadDotEnv reads variables from the given .env files (default ".env")
// without overriding variables already set in the environment. Missing
// files are not an error; it reports whether any file was loaded.
func LoadDotEnv(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("stat %s: %w", f, err)
		}
	}
	if len(present) == 0 {
		return false, nil
	}

	if err := godotenv.Load(present...); err != nil {
		return false, fmt.Errorf("load %s: %w", strings.Join(present, ", "), err)
	}
	return true, nil
}

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg, err := LoadUnvalidated()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadUnvalidated reads configuration without validating it, for callers
// that apply overrides (CLI flags) before calling Validate.
func LoadUnvalidated() (*Config, error) {
	cfg := &Config{}
	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	return cfg, nil
}

// loadStruct populates tagged fields from the environment, recursing into
// nested structs.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, ok := lookupEnv(envName, field.Tag.Get("envAlt"))
		if !ok {
			if field.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// lookupEnv returns the first non-empty value among the given variables.
func lookupEnv(names ...string) (string, bool) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			return v, true
		}
	}
	return "", false
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		field.SetInt(int64(d))

	case field.Kind() == reflect.String:
		field.SetString(value)

	case field.Kind() == reflect.Int || field.Kind() == reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
		field.Set(reflect.ValueOf(splitList(value)))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}

	return nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Scan
	if _, err := core.ParsePhoneFormat(c.Scan.PhoneFormat); err != nil {
		errs = append(errs, fmt.Sprintf("PHONE_FORMAT (%q) must be one of: hyphen, paren", c.Scan.PhoneFormat))
	}
	if c.Scan.MaxFileSize <= 0 {
		errs = append(errs, "SCAN_MAX_FILE_SIZE must be positive")
	}
	if c.Scan.MaxConcurrent <= 0 {
		errs = append(errs, "SCAN_MAX_CONCURRENT must be positive")
	}
	if c.Scan.MaxWaitTime <= 0 {
		errs = append(errs, "SCAN_MAX_WAIT_TIME must be positive")
	}
	if c.Scan.Timeout <= 0 {
		errs = append(errs, "SCAN_TIMEOUT must be positive")
	}

	// Reference
	if c.Reference.UseDatabase() {
		if c.Reference.StatesTable == "" || c.Reference.ZipsTable == "" {
			errs = append(errs, "REFERENCE_STATES_TABLE and REFERENCE_ZIPS_TABLE are required with REFERENCE_DATABASE_URL")
		}
		if c.Reference.MaxConns <= 0 {
			errs = append(errs, "REFERENCE_DB_MAX_CONNS must be positive")
		}
	} else if c.Reference.ZipsFile == "" {
		errs = append(errs, "ZIPS_FILE is required when REFERENCE_DATABASE_URL is not set")
	}
	if c.Reference.LoadTimeout <= 0 {
		errs = append(errs, "REFERENCE_LOAD_TIMEOUT must be positive")
	}

	// Server
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	// Security
	if c.Security.RequireAPIKey && len(c.Security.APIKeys) == 0 {
		errs = append(errs, "REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
	}
	if c.Security.RateLimit < 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS must be non-negative")
	}
	if c.Security.RateLimit > 0 && c.Security.RateWindow <= 0 {
		errs = append(errs, "RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}

	// Logging
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a safe string representation of the config for logging.
// The database URL and API keys are masked.
func (c *Config) String() string {
	dbURL := ""
	if c.Reference.UseDatabase() {
		dbURL = "[MASKED]"
	}
	return fmt.Sprintf(
		"Config{Scan: {Input: %q, Output: %q, PhoneFormat: %q, MaxConcurrent: %d}, "+
			"Reference: {StatesFile: %q, ZipsFile: %q, DatabaseURL: %q}, "+
			"Server: {Addr: %q}, Security: {RequireAPIKey: %v, APIKeys: %d}, "+
			"Logging: {Level: %q, Format: %q}}",
		c.Scan.InputFile, c.Scan.OutputPath, c.Scan.PhoneFormat, c.Scan.MaxConcurrent,
		c.Reference.StatesFile, c.Reference.ZipsFile, dbURL,
		c.Server.Addr(), c.Security.RequireAPIKey, len(c.Security.APIKeys),
		c.Logging.Level, c.Logging.Format,
	)
}
