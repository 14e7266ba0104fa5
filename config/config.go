package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv             string
	AppPort            string
	AppOrigins         string
	DBDriver           string
	DBPath             string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSSLMode          string
	DBMaxIdleConns     int
	DBMaxOpenConns     int
	NatsURL            string
	EventSubjectPrefix string
	JWTSecret          string
	JWTExpirationHours int
	AppPasswordHash    string
	LogLevel           string
	LogFormat          string
	LogFile            string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		slog.Warn("invalid integer value, using default", "key", key, "default", defaultValue)
	}
	return defaultValue
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	appEnv := getEnv("APP_ENV", "development")
	defaultLevel := "info"
	if appEnv == "development" {
		defaultLevel = "debug"
	}

	return Config{
		AppEnv:             appEnv,
		AppPort:            getEnv("APP_PORT", "8080"),
		AppOrigins:         getEnv("APP_ORIGINS", "http://localhost*"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:             getEnv("DB_PATH", "data/todos.db"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "vibetodo"),
		DBPassword:         getEnv("DB_PASSWORD", "vibetodo"),
		DBName:             getEnv("DB_NAME", "vibetodo"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		DBMaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		NatsURL:            getEnv("NATS_URL", ""),
		EventSubjectPrefix: getEnv("EVENT_SUBJECT_PREFIX", "vibetodo"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		AppPasswordHash:    getEnv("APP_PASSWORD_HASH", ""),
		LogLevel:           getEnv("LOG_LEVEL", defaultLevel),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		LogFile:            getEnv("LOG_FILE", ""),
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost,
			c.DBPort,
			c.DBUser,
			c.DBPassword,
			c.DBName,
			c.DBSSLMode,
		)
	}
	return SQLiteDSN(c.DBPath)
}

// SQLiteDSN appends the connection options every sqlite handle needs:
// enforced foreign keys and a busy timeout.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1&_busy_timeout=5000"
}

func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
