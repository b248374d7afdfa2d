// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Admin    AdminConfig
	Catalog  CatalogConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	BaseURL      string        // Public base URL, used for OAuth redirects (default: http://localhost:{port})
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// DatabaseConfig holds SQLite storage configuration.
type DatabaseConfig struct {
	Path string // Path to the SQLite database file
}

// AuthConfig holds Google OAuth and session configuration.
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	// SessionDuration is how long a browser session stays valid (default: 720h).
	SessionDuration time.Duration
}

// AdminConfig holds the access-control knobs consumed by the registration
// gate and the admin guard. Registration defaults to closed so a freshly
// deployed instance does not accept arbitrary sign-ups.
type AdminConfig struct {
	// AdminEmail is the one email address granted the admin surface.
	AdminEmail string
	// AllowRegistration opens account creation for unknown identities.
	AllowRegistration bool
	// DevUserEmail is the reserved development identity that is treated
	// as an admin when the environment is not production.
	DevUserEmail string
	// DevAccessDate gates the /auth/dev sign-in: it must equal today's
	// date (YYYY-MM-DD) for the dev login to work outside tests.
	DevAccessDate string
}

// CatalogConfig holds Google Books API configuration.
type CatalogConfig struct {
	APIKey  string
	BaseURL string // Overridable for tests (default: https://www.googleapis.com/books/v1)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dbPath := flag.String("db-path", "", "Path to the SQLite database file")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	baseURL := flag.String("base-url", "", "Public base URL for OAuth redirects")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	// Auth flags
	sessionDuration := flag.String("session-duration", "", "Browser session lifetime (e.g., 720h)")

	// Admin flags
	adminEmail := flag.String("admin-email", "", "Email address granted the admin surface")
	allowRegistration := flag.String("allow-registration", "", "Allow new account creation on sign-in (default: false)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:    getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			BaseURL: getConfigValue(*baseURL, "SERVER_BASE_URL", ""),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(*dbPath, "DB_PATH", ""),
		},
		Auth: AuthConfig{
			GoogleClientID:     getConfigValue("", "GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getConfigValue("", "GOOGLE_CLIENT_SECRET", ""),
		},
		Admin: AdminConfig{
			AdminEmail:        getConfigValue(*adminEmail, "ADMIN_USER", ""),
			AllowRegistration: getBoolConfigValue(*allowRegistration, "ALLOW_REGISTRATION", false),
			DevUserEmail:      getConfigValue("", "DEV_USER_EMAIL", "dev@example.com"),
			DevAccessDate:     getConfigValue("", "DEV_USER_ACCESS", ""),
		},
		Catalog: CatalogConfig{
			APIKey:  getConfigValue("", "GOOGLE_API_KEY", ""),
			BaseURL: getConfigValue("", "GOOGLE_BOOKS_BASE_URL", "https://www.googleapis.com/books/v1"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:" + cfg.Server.Port
	}

	// Parse session duration.
	sessionDurationStr := getConfigValue(*sessionDuration, "SESSION_DURATION", "720h")
	d, err := time.ParseDuration(sessionDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid session duration %q: %w", sessionDurationStr, err)
	}
	cfg.Auth.SessionDuration = d

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Expand and validate the database path.
	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode. The
// dev sign-in route and the reserved dev admin are disabled there.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	// OAuth credentials can be empty in development - the dev sign-in
	// route covers local work without a Google project.
	if c.IsProduction() {
		if c.Auth.GoogleClientID == "" || c.Auth.GoogleClientSecret == "" {
			return errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required in production")
		}
	}

	return nil
}

// expandDatabasePath expands ~ and makes the path absolute.
// Defaults to ~/BookScout/bookscout.db if not specified.
func (c *Config) expandDatabasePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "BookScout", "bookscout.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
