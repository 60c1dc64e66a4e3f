package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Overlay sessions
	SessionTTLMinutes int
	JWTSecret         string

	// Prediction defaults handed to new sessions
	DefaultMaxBounces       int
	DefaultLengthMultiplier float64

	// Admin (bcrypt hash of the admin key; see cmd/hash-admin-key)
	AdminKeyHash string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/bankshot?sslmode=disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Overlay sessions
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 120),
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),

		// Prediction defaults
		DefaultMaxBounces:       getEnvInt("DEFAULT_MAX_BOUNCES", 3),
		DefaultLengthMultiplier: getEnvFloat("DEFAULT_LENGTH_MULTIPLIER", 2.0),

		// Admin
		AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
