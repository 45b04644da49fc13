package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var ErrMissingDatabase = errors.New("missing datastore credentials: set DATABASE_URL or DB_HOST/DB_USER/DB_NAME")

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	PublicDir   string

	DBDriver string
	DSN      string

	UPCItemDBURL     string
	OpenFoodFactsURL string
	UPCTimeout       time.Duration
	BackfillDelay    time.Duration

	AuthEnabled   bool
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

// Load reads .env (when present) and the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, relying on process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function, so tests need not touch os env
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:             get("PORT", "3001"),
		Environment:      get("APP_ENV", get("NODE_ENV", "development")),
		LogLevel:         get("LOG_LEVEL", "info"),
		PublicDir:        get("PUBLIC_DIR", "./public"),
		DBDriver:         get("DB_DRIVER", "postgres"),
		UPCItemDBURL:     get("UPCITEMDB_URL", "https://api.upcitemdb.com"),
		OpenFoodFactsURL: get("OPENFOODFACTS_URL", "https://world.openfoodfacts.org"),
		JWTSecret:        getenv("JWT_SECRET"),
		AdminEmail:       get("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:    getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.UPCTimeout, err = parseDuration(get("UPC_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("UPC_TIMEOUT: %w", err)
	}
	if cfg.BackfillDelay, err = parseDuration(get("BACKFILL_DELAY", "500ms")); err != nil {
		return nil, fmt.Errorf("BACKFILL_DELAY: %w", err)
	}
	if cfg.TokenTTL, err = parseDuration(get("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.AuthEnabled, err = strconv.ParseBool(get("AUTH_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("AUTH_ENABLED: %w", err)
	}

	cfg.DSN = getenv("DATABASE_URL")
	if cfg.DSN == "" && cfg.DBDriver == "postgres" && getenv("DB_HOST") != "" {
		cfg.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getenv("DB_HOST"),
			getenv("DB_USER"),
			getenv("DB_PASSWORD"),
			getenv("DB_NAME"),
			get("DB_PORT", "5432"),
			get("DB_SSLMODE", "disable"),
		)
	}
	if cfg.DSN == "" {
		return nil, ErrMissingDatabase
	}

	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			return nil, errors.New("JWT_SECRET is required when AUTH_ENABLED is set")
		}
		if cfg.AdminPassword == "" {
			return nil, errors.New("ADMIN_PASSWORD is required when AUTH_ENABLED is set")
		}
	}

	return cfg, nil
}

func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}
