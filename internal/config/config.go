// Package config assembles runtime settings from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port         string `yaml:"port"`
	DBDriver     string `yaml:"db_driver"`
	DatabasePath string `yaml:"database_path"`
	DatabaseURL  string `yaml:"database_url"`
	LogLevel     string `yaml:"log_level"`

	JWTSecret    string `yaml:"jwt_secret"`
	CookieSecure bool   `yaml:"cookie_secure"`
	BcryptCost   int    `yaml:"bcrypt_cost"`

	// Initial operator account, created on startup when missing.
	AdminEmail    string `yaml:"admin_email"`
	AdminName     string `yaml:"admin_name"`
	AdminPassword string `yaml:"admin_password"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Port:         "8080",
		DBDriver:     DriverSQLite,
		DatabasePath: "customers.db",
		LogLevel:     "info",
		CookieSecure: true,
		BcryptCost:   12,
		AdminName:    "Administrator",
	}
}

// Load reads path (if non-empty) over the defaults and then applies
// environment overrides. A missing file named by path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = envOrDefault("PORT", c.Port)
	c.DBDriver = envOrDefault("DB_DRIVER", c.DBDriver)
	c.DatabasePath = envOrDefault("DATABASE_PATH", c.DatabasePath)
	c.DatabaseURL = envOrDefault("DATABASE_URL", c.DatabaseURL)
	c.LogLevel = envOrDefault("LOG_LEVEL", c.LogLevel)
	c.JWTSecret = envOrDefault("JWT_SECRET", c.JWTSecret)
	c.AdminEmail = envOrDefault("ADMIN_EMAIL", c.AdminEmail)
	c.AdminName = envOrDefault("ADMIN_NAME", c.AdminName)
	c.AdminPassword = envOrDefault("ADMIN_PASSWORD", c.AdminPassword)

	// Secure cookies unless explicitly disabled for local development.
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		c.CookieSecure = v != "false"
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		c.BcryptCost = cost
	}
	return nil
}

// Validate checks the settings every entry point needs: a usable database.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}
	return nil
}

// ValidateServer additionally checks the settings of the web server.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}
