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
	Seoji    SeojiConfig
	Kakao    KakaoConfig
	Ingest   IngestConfig
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
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// DatabaseConfig holds SQLite storage configuration.
type DatabaseConfig struct {
	Path string // Directory for the database file
}

// SeojiConfig holds configuration for the national bibliographic feed API.
type SeojiConfig struct {
	BaseURL    string
	CertKey    string
	PageSize   int           // Records per page (default: 100)
	MaxRetries int           // Attempts per request (default: 3)
	Timeout    time.Duration // Per-request timeout (default: 30s)
}

// KakaoConfig holds configuration for the commercial book-search API.
type KakaoConfig struct {
	BaseURL  string
	RESTKey  string
	PageSize int           // Documents per page (default: 50)
	Timeout  time.Duration // Per-request timeout (default: 30s)
}

// IngestConfig holds ingestion pipeline configuration.
type IngestConfig struct {
	ChunkSize        int  // Items committed per chunk (default: 100)
	ScheduleEnabled  bool // Run the daily ingestion scheduler (default: true)
	ScheduleHour     int  // Local hour for the daily run (default: 2)
	SearchLogEnabled bool // Include keyword replay in the daily schedule (default: true)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dbPath := flag.String("db-path", "", "Directory for the database file")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	seojiCertKey := flag.String("seoji-cert-key", "", "Certification key for the bibliographic feed API")
	kakaoRESTKey := flag.String("kakao-rest-key", "", "REST API key for the book search API")

	chunkSize := flag.String("ingest-chunk-size", "", "Items committed per ingestion chunk (default: 100)")
	scheduleEnabled := flag.String("ingest-schedule", "", "Enable the daily ingestion scheduler (default: true)")
	scheduleHour := flag.String("ingest-schedule-hour", "", "Local hour for the daily ingestion run (default: 2)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(*dbPath, "DB_PATH", ""),
		},
		Seoji: SeojiConfig{
			BaseURL:    getConfigValue("", "SEOJI_BASE_URL", "https://www.nl.go.kr/seoji/SearchApi.do"),
			CertKey:    getConfigValue(*seojiCertKey, "SEOJI_CERT_KEY", ""),
			PageSize:   getIntConfigValue("", "SEOJI_PAGE_SIZE", 100),
			MaxRetries: getIntConfigValue("", "SEOJI_MAX_RETRIES", 3),
		},
		Kakao: KakaoConfig{
			BaseURL:  getConfigValue("", "KAKAO_BASE_URL", "https://dapi.kakao.com"),
			RESTKey:  getConfigValue(*kakaoRESTKey, "KAKAO_REST_KEY", ""),
			PageSize: getIntConfigValue("", "KAKAO_PAGE_SIZE", 50),
		},
		Ingest: IngestConfig{
			ChunkSize:        getIntConfigValue(*chunkSize, "INGEST_CHUNK_SIZE", 100),
			ScheduleEnabled:  getBoolConfigValue(*scheduleEnabled, "INGEST_SCHEDULE", true),
			ScheduleHour:     getIntConfigValue(*scheduleHour, "INGEST_SCHEDULE_HOUR", 2),
			SearchLogEnabled: getBoolConfigValue("", "INGEST_SEARCH_LOG", true),
		},
	}

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

	// Parse client timeouts.
	seojiTimeoutStr := getConfigValue("", "SEOJI_TIMEOUT", "30s")
	cfg.Seoji.Timeout, err = time.ParseDuration(seojiTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid seoji timeout %q: %w", seojiTimeoutStr, err)
	}

	kakaoTimeoutStr := getConfigValue("", "KAKAO_TIMEOUT", "30s")
	cfg.Kakao.Timeout, err = time.ParseDuration(kakaoTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid kakao timeout %q: %w", kakaoTimeoutStr, err)
	}

	// Expand and validate the database path.
	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
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

	if c.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("invalid ingest chunk size: %d", c.Ingest.ChunkSize)
	}
	if c.Ingest.ScheduleHour < 0 || c.Ingest.ScheduleHour > 23 {
		return fmt.Errorf("invalid ingest schedule hour: %d", c.Ingest.ScheduleHour)
	}

	// API keys may be empty in development; the admin trigger surface reports
	// upstream failures per run instead of refusing to boot.

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDatabasePath expands ~ and makes the path absolute.
func (c *Config) expandDatabasePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "BookHive", "data")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
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

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
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

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
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
