package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"myaccount/internal/cache"
	"myaccount/internal/database"
	"myaccount/internal/external"
	"myaccount/internal/messaging"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreValkey = "valkey"

	OrdersSourceSeed     = "seed"
	OrdersSourcePostgres = "postgres"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	SessionStore string
	OrdersSource string

	// Account the page is mounted for; there is no login in front of it
	AccountUserID int64

	Valkey   cache.Config
	Database database.Config
	NATS     messaging.Config
	Identity external.IdentityConfig
}

// LoadDotEnv подгружает переменные из .env файлов, если они есть.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to load env file", "file", f, "error", err)
		}
	}
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		SessionStore:  getEnv("SESSION_STORE", SessionStoreMemory),
		OrdersSource:  getEnv("ORDERS_SOURCE", OrdersSourceSeed),
		AccountUserID: int64(getEnvInt("ACCOUNT_USER_ID", 1)),

		Valkey: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       getEnvInt("VALKEY_DB", 0),
			TTL:      time.Duration(getEnvInt("SESSION_TTL_MIN", 60)) * time.Minute,
		},

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "myaccount"),
			Password:           getEnv("DB_PASSWORD", "myaccount123"),
			DBName:             getEnv("DB_NAME", "myaccount"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			Enabled:   getEnvBool("NATS_ENABLED", false),
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "myaccount"),
			ClientID:  getEnv("NATS_CLIENT_ID", "myaccount-api"),
		},

		Identity: external.IdentityConfig{
			BaseURL:           getEnv("IDENTITY_SERVICE_URL", ""),
			ReferencePassword: getEnv("ACCOUNT_REFERENCE_PASSWORD", "parola123"),
			Timeout:           time.Duration(getEnvInt("IDENTITY_TIMEOUT_SEC", 10)) * time.Second,
		},
	}
}

// SessionTTL is how long an idle page session is kept
func (c *Config) SessionTTL() time.Duration {
	return c.Valkey.TTL
}

// Validate проверяет значения, которые нельзя молча заменить дефолтом
func (c *Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreValkey:
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreValkey, c.SessionStore)
	}
	switch c.OrdersSource {
	case OrdersSourceSeed, OrdersSourcePostgres:
	default:
		return fmt.Errorf("ORDERS_SOURCE must be %q or %q, got %q", OrdersSourceSeed, OrdersSourcePostgres, c.OrdersSource)
	}
	if c.SessionTTL() <= 0 {
		return fmt.Errorf("SESSION_TTL_MIN must be positive")
	}
	return nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
