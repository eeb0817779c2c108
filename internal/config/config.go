package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings loaded from the environment.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	DatabaseDSN string
	RedisAddr   string

	JWTSecret []byte
	JWTExpiry time.Duration
}

// Load reads the environment (honouring a local .env file) and returns the
// service configuration. Missing JWT_SECRET is fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return &Config{
		Addr:         getEnvOrDefault("ADDR", ":8080"),
		ReadTimeout:  getDurationOrDefault("READ_TIMEOUT", "10s"),
		WriteTimeout: getDurationOrDefault("WRITE_TIMEOUT", "10s"),
		DatabaseDSN: getEnvOrDefault("DATABASE_DSN",
			"host=localhost user=pawlink password=pawlink dbname=pawlinkdb port=5432 sslmode=disable"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret: []byte(getEnvOrFatal("JWT_SECRET")),
		JWTExpiry: getDurationOrDefault("JWT_EXPIRES_IN", "72h"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrFatal(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s environment variable is required", key)
	}
	return value
}

func getDurationOrDefault(key, defaultValue string) time.Duration {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return duration
}
