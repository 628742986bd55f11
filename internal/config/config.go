// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is unset
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds the server configuration
type Config struct {
	Host        string
	Port        int
	JWTSecret   string
	TokenTTL    time.Duration
	BcryptCost  int
	StorageType string
	RedisURL    string
	RedisPrefix string
	StaticDir   string
	LogLevel    slog.Level
}

// Default returns the configuration used for unset variables
func Default() Config {
	return Config{
		Port:        8080,
		TokenTTL:    7 * 24 * time.Hour,
		BcryptCost:  bcrypt.DefaultCost,
		StorageType: "memory",
		RedisURL:    "redis://localhost:6379",
		RedisPrefix: "staffdir",
		LogLevel:    slog.LevelInfo,
	}
}

// LoadDotenv loads variables from the given .env files (".env" when none
// are given) without overriding variables already set. Missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv builds a Config from the process environment
func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load builds a Config using lookup to read variables
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get("HOST"); v != "" {
		cfg.Host = v
	}
	if v := get("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	cfg.JWTSecret = get("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	if v := get("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL %q", v)
		}
		cfg.TokenTTL = ttl
	}
	if v := get("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST %q", v)
		}
		cfg.BcryptCost = cost
	}

	if v := get("STORAGE_TYPE"); v != "" {
		cfg.StorageType = strings.ToLower(v)
	}
	if cfg.StorageType != "memory" && cfg.StorageType != "redis" {
		return Config{}, fmt.Errorf("invalid STORAGE_TYPE %q: must be memory or redis", cfg.StorageType)
	}
	if v := get("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := get("REDIS_PREFIX"); v != "" {
		cfg.RedisPrefix = v
	}

	cfg.StaticDir = get("STATIC_DIR")

	if v := get("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", v)
		}
	}

	return cfg, nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
