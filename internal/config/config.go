package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	NASA struct {
		APIKey     string
		APODURL    string
		NEOURL     string
		InsightURL string
	}
	Launch struct {
		URL      string
		PageSize int
	}
	Cache struct {
		TTL       time.Duration
		Staleness time.Duration
	}
	Auth struct {
		SessionTTL time.Duration
	}
	Workers struct {
		RefreshEnabled  bool
		RefreshInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
	Export struct {
		OutputDir string
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "space_explorer")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	// NASA
	cfg.NASA.APIKey = getEnv("NASA_API_KEY", "")
	cfg.NASA.APODURL = getEnv("NASA_APOD_URL", "https://api.nasa.gov/planetary/apod")
	cfg.NASA.NEOURL = getEnv("NASA_NEO_URL", "https://api.nasa.gov/neo/rest/v1/feed")
	cfg.NASA.InsightURL = getEnv("NASA_INSIGHT_URL", "https://api.nasa.gov/insight_weather/")

	// Launch Library
	cfg.Launch.URL = getEnv("LAUNCH_URL", "https://ll.thespacedevs.com/2.2.0/launch/upcoming/")
	cfg.Launch.PageSize = getEnvAsInt("LAUNCH_PAGE_SIZE", 20)

	// Кэширование
	cfg.Cache.TTL = getEnvAsDuration("CACHE_TTL", 24*time.Hour)
	cfg.Cache.Staleness = getEnvAsDuration("CACHE_STALENESS", 24*time.Hour)

	// Auth
	cfg.Auth.SessionTTL = getEnvAsDuration("SESSION_TTL", 7*24*time.Hour)

	// Workers
	cfg.Workers.RefreshEnabled = getEnvAsBool("REFRESH_ENABLED", false)
	cfg.Workers.RefreshInterval = getEnvAsDuration("REFRESH_INTERVAL", 6*time.Hour)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	// Export
	cfg.Export.OutputDir = getEnv("EXPORT_OUTPUT_DIR", "./data/exports")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}
