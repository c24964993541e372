package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"

	PaymentHTTP   = "http"
	PaymentStripe = "stripe"
)

var (
	PORT        string
	APP_ENV     string
	APP_URL     string
	CORS_ORIGIN string

	SESSION_SECRET string
	CSRF_KEY       string

	STORAGE_DRIVER string
	DB_URL         string
	REDIS_ADDR     string

	PAYMENT_PROVIDER      string
	PAYMENT_URL           string
	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		slog.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	APP_ENV = getEnv("APP_ENV", "development")
	APP_URL = getEnv("APP_URL", "http://localhost:"+PORT)
	CORS_ORIGIN = getEnv("CORS_ORIGIN", APP_URL)

	SESSION_SECRET = mustEnv("SESSION_SECRET")
	CSRF_KEY = getEnv("CSRF_KEY", "")

	STORAGE_DRIVER = getEnv("STORAGE_DRIVER", StorageMemory)
	DB_URL = getEnv("DB_URL", "")
	REDIS_ADDR = getEnv("REDIS_ADDR", "")

	switch STORAGE_DRIVER {
	case StorageMemory:
	case StoragePostgres:
		DB_URL = mustEnv("DB_URL")
	case StorageRedis:
		REDIS_ADDR = mustEnv("REDIS_ADDR")
	default:
		slog.Error("Unknown STORAGE_DRIVER", "value", STORAGE_DRIVER)
		os.Exit(1)
	}

	PAYMENT_PROVIDER = getEnv("PAYMENT_PROVIDER", PaymentHTTP)
	PAYMENT_URL = getEnv("PAYMENT_URL", "https://api.celeriumpatinaje.com/pago")
	if PAYMENT_PROVIDER == PaymentStripe {
		STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
		STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")
	}
}

// Production reports whether cookies must be marked Secure.
func Production() bool {
	return APP_ENV == "production"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		slog.Error("Missing required environment variable", "key", key)
		os.Exit(1)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
