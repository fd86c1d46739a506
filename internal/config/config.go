package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the backend.
type Config struct {
	Port string

	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string

	JWTSecret string

	// TelegramBotToken enables offline notifications when set.
	TelegramBotToken string
}

// Load reads configuration from environment variables, loading a .env file
// first when one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=user password=password dbname=chatcalldb port=5432 sslmode=disable"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-only-secret"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
