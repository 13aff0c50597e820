package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/aussiebroadwan/forum/pkg/httpx"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when FORUM_CONFIG is unset and the file exists.
const DefaultConfigFile = "forum.yaml"

type Config struct {
	JWTSecret           string        `yaml:"jwt_secret"`            // Required: HS256 signing secret
	DatabaseFile        string        `yaml:"database_file"`         // Path to SQLite database file (default: forum.db)
	Port                int           `yaml:"port"`                  // HTTP server port (default: 8000)
	Env                 string        `yaml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        `yaml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        `yaml:"log_format"`            // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
	FrontendURL         string        `yaml:"frontend_url"`          // CORS allowed origin (default: *)
	TrustedProxies      string        `yaml:"trusted_proxies"`       // Comma-separated CIDRs allowed to set X-Forwarded-For (default: none)
	HashConcurrency     int           `yaml:"hash_concurrency"`      // Max concurrent password derivations (default: NumCPU)

	BootstrapAdmin BootstrapAdmin `yaml:"bootstrap_admin"`
	RateLimits     RateLimits     `yaml:"rate_limits"`
}

// BootstrapAdmin names an admin account to create at startup. All three
// fields must be set for it to take effect.
type BootstrapAdmin struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

func (b BootstrapAdmin) Enabled() bool {
	return b.Username != "" && b.Email != "" && b.Password != ""
}

type RateLimits struct {
	Public   RateLimit `yaml:"public"`
	Moderate RateLimit `yaml:"moderate"`
}

type RateLimit struct {
	Requests  int `yaml:"requests"`
	WindowSec int `yaml:"window_sec"`
	Burst     int `yaml:"burst"`
}

// apply overlays the positive fields of l on base.
func (l RateLimit) apply(base httpx.RateLimitConfig) httpx.RateLimitConfig {
	if l.Requests > 0 {
		base.RequestsPerWindow = l.Requests
	}
	if l.WindowSec > 0 {
		base.Window = time.Duration(l.WindowSec) * time.Second
	}
	if l.Burst > 0 {
		base.Burst = l.Burst
	}
	return base
}

// PublicLimit is the effective limit for anonymous reads.
func (c Config) PublicLimit() httpx.RateLimitConfig {
	return httpx.ParseRateLimitFromEnv("PUBLIC", c.RateLimits.Public.apply(httpx.PublicLimit))
}

// ModerateLimit is the effective limit for admin writes.
func (c Config) ModerateLimit() httpx.RateLimitConfig {
	return httpx.ParseRateLimitFromEnv("MODERATE", c.RateLimits.Moderate.apply(httpx.ModerateLimit))
}

func defaultConfig() Config {
	return Config{
		DatabaseFile:        "forum.db",
		Port:                8000,
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		ShutdownGracePeriod: 10 * time.Second,
		FrontendURL:         "*",
		HashConcurrency:     runtime.NumCPU(),
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file,
// then the environment. Later sources win.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	path, explicit := os.LookupEnv("FORUM_CONFIG")
	if !explicit || path == "" {
		path, explicit = DefaultConfigFile, false
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.JWTSecret = getEnvOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.DatabaseFile = getEnvOrDefault("FORUM_DATABASE_FILE", cfg.DatabaseFile)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.FrontendURL = getEnvOrDefault("FRONTEND_URL", cfg.FrontendURL)
	cfg.TrustedProxies = getEnvOrDefault("TRUSTED_PROXIES", cfg.TrustedProxies)
	cfg.HashConcurrency = getEnvIntOrDefault("HASH_CONCURRENCY", cfg.HashConcurrency)

	cfg.BootstrapAdmin.Username = getEnvOrDefault("BOOTSTRAP_ADMIN_USERNAME", cfg.BootstrapAdmin.Username)
	cfg.BootstrapAdmin.Email = getEnvOrDefault("BOOTSTRAP_ADMIN_EMAIL", cfg.BootstrapAdmin.Email)
	cfg.BootstrapAdmin.Password = getEnvOrDefault("BOOTSTRAP_ADMIN_PASSWORD", cfg.BootstrapAdmin.Password)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
