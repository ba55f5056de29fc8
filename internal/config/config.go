package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	ServerPort string
	ServerEnv  string
	ServerHost string

	// Database
	DatabaseURL string

	// Geocoding
	GeocodeAPIKey           string
	GeocodeEndpoint         string
	GeocodeFallbackEndpoint string
	GeocodeCountry          string
	GeocodeTimeoutSec       int

	// Location cache
	CacheBackend     string // "memory" or "redis"
	PostalCacheTTL   time.Duration
	EntityCacheTTL   time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int

	// Selection
	DefaultMaxResults int

	// SigNoz
	SigNozEndpoint string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),
		ServerHost: getEnv("SERVER_HOST", "localhost:3000"),

		// Database - DATABASE_URL wins, otherwise built from individual env vars
		DatabaseURL: getDatabaseURL(),

		// Geocoding
		GeocodeAPIKey:           getEnv("GEOCODE_API_KEY", ""),
		GeocodeEndpoint:         getEnv("GEOCODE_ENDPOINT", "https://maps.googleapis.com/maps/api/geocode/json"),
		GeocodeFallbackEndpoint: getEnv("GEOCODE_FALLBACK_ENDPOINT", "https://nominatim.openstreetmap.org/search"),
		GeocodeCountry:          getEnv("GEOCODE_COUNTRY", "IN"),
		GeocodeTimeoutSec:       getEnvAsInt("GEOCODE_TIMEOUT_SECONDS", 10),

		// Location cache - postal lookups keep for a day, derived entity
		// locations are swept every 6 hours
		CacheBackend:   getEnv("LOCATION_CACHE_BACKEND", "memory"),
		PostalCacheTTL: getEnvAsDuration("POSTAL_CACHE_TTL", 24*time.Hour),
		EntityCacheTTL: getEnvAsDuration("ENTITY_CACHE_TTL", 6*time.Hour),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),

		// Selection
		DefaultMaxResults: getEnvAsInt("DEFAULT_MAX_RESULTS", 10),

		// SigNoz
		SigNozEndpoint: getEnv("SIGNOZ_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getDatabaseURL returns DATABASE_URL or builds it from individual env vars
func getDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "vyapaar")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
