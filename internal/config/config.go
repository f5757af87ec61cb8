package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nahidhasan98/changelog-viewer/internal/pattern"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Logging configuration
	Log LogConfig

	// GitHub API configuration
	GitHub GitHubConfig

	// Changelog defaults
	Changelog ChangelogConfig

	// Session registry configuration
	Sessions SessionsConfig

	// Per-client request limiting
	RateLimit RateLimitConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// GitHubConfig holds the GitHub API client configuration
type GitHubConfig struct {
	APIURL    string
	UserAgent string
	Timeout   time.Duration
}

// ChangelogConfig holds the defaults used when a request leaves them out
type ChangelogConfig struct {
	DefaultRepo    string
	DefaultPattern string
	ShareBaseURL   string // page the shareable fragment is appended to
}

// SessionsConfig bounds the in-memory session registry
type SessionsConfig struct {
	TTL           time.Duration
	Max           int
	SweepInterval time.Duration
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	// Try to load .env file (ignore errors - it's optional)
	_ = godotenv.Load(".env")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", ""),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsSlice("SERVER_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		GitHub: GitHubConfig{
			APIURL:    getEnv("GITHUB_API_URL", "https://api.github.com"),
			UserAgent: getEnv("GITHUB_USER_AGENT", "changelog-viewer"),
			Timeout:   getEnvAsDuration("GITHUB_TIMEOUT", 30*time.Second),
		},
		Changelog: ChangelogConfig{
			DefaultRepo:    getEnv("CHANGELOG_DEFAULT_REPO", "korynunn/changelogit"),
			DefaultPattern: getEnv("CHANGELOG_DEFAULT_PATTERN", pattern.Default),
			ShareBaseURL:   getEnv("CHANGELOG_SHARE_BASE_URL", "https://korynunn.github.io/changelogit/"),
		},
		Sessions: SessionsConfig{
			TTL:           getEnvAsDuration("SESSIONS_TTL", 30*time.Minute),
			Max:           getEnvAsInt("SESSIONS_MAX", 1000),
			SweepInterval: getEnvAsDuration("SESSIONS_SWEEP_INTERVAL", time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 120),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q (want json or text)", c.Log.Format)
	}

	apiURL, err := url.Parse(c.GitHub.APIURL)
	if err != nil || apiURL.Host == "" {
		return fmt.Errorf("invalid GitHub API URL: %q", c.GitHub.APIURL)
	}
	if apiURL.Scheme != "https" {
		return fmt.Errorf("GitHub API URL must use https: %q", c.GitHub.APIURL)
	}

	if c.GitHub.Timeout <= 0 {
		return fmt.Errorf("GitHub timeout must be positive")
	}

	if _, err := pattern.Compile(c.Changelog.DefaultPattern); err != nil {
		return fmt.Errorf("invalid default pattern: %w", err)
	}

	if c.Sessions.Max < 0 {
		return fmt.Errorf("sessions max must not be negative: %d", c.Sessions.Max)
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	return nil
}

// Address returns the server address in the format host:port
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper functions to get environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	values := make([]string, 0)
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	return values
}
