package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"foodbot/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

// Defaults applied when a key is unset.
const (
	DefaultHTTPPort          = "8080"
	DefaultRepositoryTimeout = 5 * time.Second
	DefaultCartIdleTTL       = 30 * time.Minute
	DefaultDedupTTL          = 10 * time.Minute
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBDriver   string

	// RepositoryTimeout bounds every webhook and REST request, storage calls
	// included.
	RepositoryTimeout time.Duration

	CartIdleTTL          time.Duration
	CartEvictionSchedule string

	// RedisURL enables webhook dedup when set.
	RedisURL string
	DedupTTL time.Duration

	// CatalogFile overrides the embedded menu and store hours.
	CatalogFile string
}

// LoadConfig reads .env from the working directory, when present, and then
// the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return ParseConfig(os.Getenv)
}

// ParseConfig builds a Config from getenv, applying defaults and validating
// durations.
func ParseConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:             withDefault(getenv("HTTP_PORT"), DefaultHTTPPort),
		DBHost:               getenv("DB_HOST"),
		DBPort:               withDefault(getenv("DB_PORT"), "5432"),
		DBUser:               getenv("DB_USER"),
		DBPassword:           getenv("DB_PASSWORD"),
		DBName:               getenv("DB_NAME"),
		DBSslMode:            getenv("DB_SSLMODE"),
		DBDriver:             withDefault(getenv("DB_DRIVER"), postgres.DriverPgx),
		CartEvictionSchedule: getenv("CART_EVICTION_SCHEDULE"),
		RedisURL:             getenv("REDIS_URL"),
		CatalogFile:          getenv("CATALOG_FILE"),
	}

	var err error
	if config.RepositoryTimeout, err = duration(getenv, "REPOSITORY_TIMEOUT", DefaultRepositoryTimeout); err != nil {
		return Config{}, err
	}
	if config.CartIdleTTL, err = duration(getenv, "CART_IDLE_TTL", DefaultCartIdleTTL); err != nil {
		return Config{}, err
	}
	if config.DedupTTL, err = duration(getenv, "DEDUP_TTL", DefaultDedupTTL); err != nil {
		return Config{}, err
	}

	if config.DBDriver != postgres.DriverPgx && config.DBDriver != postgres.DriverPq {
		return Config{}, fmt.Errorf("DB_DRIVER must be %q or %q, got %q",
			postgres.DriverPgx, postgres.DriverPq, config.DBDriver)
	}

	return config, nil
}

// ConnectionSettings returns the database part of the config.
func (c Config) ConnectionSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
		Driver:   c.DBDriver,
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func duration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
