// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Repository and session backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds server configuration
type Config struct {
	Port         string
	Store        string
	DBPath       string
	SessionStore string
	SessionSweep time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AdminEmail     string
	AdminPassword  string
	SeedSampleData bool

	CORSOrigins    []string
	LoginRateLimit int
	CookieSecure   bool
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envOrDefault("ISLAND_PORT", "8080"),
		Store:         strings.ToLower(envOrDefault("ISLAND_STORE", BackendMemory)),
		DBPath:        envOrDefault("ISLAND_DB_PATH", "./islandproperties.db"),
		SessionStore:  strings.ToLower(envOrDefault("ISLAND_SESSION_STORE", BackendMemory)),
		RedisAddr:     envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AdminEmail:    strings.TrimSpace(os.Getenv("ISLAND_ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ISLAND_ADMIN_PASSWORD"),
		CORSOrigins:   splitList(envOrDefault("ISLAND_CORS_ORIGINS", "http://localhost:5173")),
	}

	var err error
	if cfg.SessionSweep, err = durationEnv("ISLAND_SESSION_SWEEP", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SeedSampleData, err = boolEnv("ISLAND_SEED_SAMPLE_DATA", false); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = intEnv("ISLAND_LOGIN_RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = boolEnv("ISLAND_COOKIE_SECURE", true); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("ISLAND_STORE: unknown backend %q", c.Store)
	}
	switch c.SessionStore {
	case BackendMemory, BackendRedis:
	case BackendSQLite:
		if c.Store != BackendSQLite {
			return fmt.Errorf("ISLAND_SESSION_STORE=sqlite requires ISLAND_STORE=sqlite")
		}
	default:
		return fmt.Errorf("ISLAND_SESSION_STORE: unknown backend %q", c.SessionStore)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ISLAND_ADMIN_EMAIL and ISLAND_ADMIN_PASSWORD must be set together")
	}
	if c.LoginRateLimit < 0 {
		return fmt.Errorf("ISLAND_LOGIN_RATE_LIMIT must not be negative")
	}
	return nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func intEnv(key string, def int) (int, error) {
	raw := envOrDefault(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := envOrDefault(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := envOrDefault(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
