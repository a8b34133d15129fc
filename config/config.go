package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends selectable at composition time.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config holds the process configuration, loaded from the environment.
type Config struct {
	HTTPAddr string

	// StoreBackend selects the backing store: "memory" or "mongo".
	StoreBackend string

	MongoURI string
	MongoDB  string

	// RedisAddr enables the feed cache when non-empty (mongo backend only).
	RedisAddr string
	CacheTTL  time.Duration

	// NatsURL enables event publishing when non-empty.
	NatsURL           string
	NatsMaxReconnects int
	NatsReconnectWait time.Duration

	JWTSecret   string
	TokenExpiry time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		StoreBackend:      getEnv("STORE_BACKEND", StoreMemory),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "lumina"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		CacheTTL:          getEnvAsDuration("CACHE_TTL", time.Minute),
		NatsURL:           getEnv("NATS_URL", ""),
		NatsMaxReconnects: getEnvAsInt("NATS_MAX_RECONNECTS", 5),
		NatsReconnectWait: getEnvAsDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenExpiry:       getEnvAsDuration("TOKEN_EXPIRY", 24*time.Hour),
	}

	if cfg.StoreBackend != StoreMemory && cfg.StoreBackend != StoreMongo {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be %q or %q", cfg.StoreBackend, StoreMemory, StoreMongo)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
