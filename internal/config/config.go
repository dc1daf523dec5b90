package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-leave/internal/auth"
	"go-leave/internal/shared/connection"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

type Config struct {
	AppEnv string
	Port   string

	StorageDriver string
	SQLiteDSN     string
	Postgres      connection.PostgresConfig
	DBMaxRetries  int

	RedisAddr string

	JWTSecret      string
	AccessTokenTTL time.Duration
	PasswordHasher string

	SeedFile    string
	SeedEnabled bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds and validates a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		SQLiteDSN:     getEnv("SQLITE_DSN", "file:leave?mode=memory&cache=shared"),
		Postgres: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "leave"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		DBMaxRetries: getEnvAsInt("DB_MAX_RETRIES", 5),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: getEnvAsDuration("ACCESS_TOKEN_TTL", auth.DefaultAccessTokenTTL),
		PasswordHasher: strings.ToLower(getEnv("PASSWORD_HASHER", auth.HasherSHA256)),

		SeedFile:    getEnv("SEED_FILE", ""),
		SeedEnabled: getEnvAsBool("SEED_ENABLED", true),

		ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 5*time.Second),
		WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if _, err := auth.NewHasher(c.PasswordHasher); err != nil {
		return fmt.Errorf("config: unknown PASSWORD_HASHER %q", c.PasswordHasher)
	}
	if c.DBMaxRetries < 1 {
		c.DBMaxRetries = 1
	}
	return nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	if val, err := strconv.ParseBool(getEnv(name, "")); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	if val, err := strconv.Atoi(getEnv(name, "")); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	if val, err := time.ParseDuration(getEnv(name, "")); err == nil && val > 0 {
		return val
	}
	return defaultVal
}
