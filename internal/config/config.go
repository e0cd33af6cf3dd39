package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Keys of the public snapshot returned by Config.Public.
const (
	KeyAnalyticsHost = "analyticsHost"
	KeyAnalyticsKey  = "analyticsKey"
	KeyBaseURL       = "baseUrl"
)

type Config struct {
	AnalyticsHost string // Analytics ingestion host exposed to the frontend
	AnalyticsKey  string // Analytics project key exposed to the frontend
	BaseURL       string // Path prefix the app is served under, may be empty

	Port        string
	DatabaseURL string
	RedisURL    string
	FrontendURL string // Frontend origin (for QR codes)
	JWTSecret   string // Secret key for JWT token signing
	JWTTTL      int    // JWT token expiration time in hours
	LogLevel    string

	RateLimitRPS        float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst      int     // Burst size for rate limiting
	RateLimitAuthRPS    float64 // Rate limit for auth endpoints (stricter)
	RateLimitAuthBurst  int     // Burst size for auth endpoints
	UnitCacheTTLMinutes int     // How long unit lookups stay in Redis
}

var (
	once     sync.Once
	snapshot *Config
)

// Get returns the process-wide configuration, read from the environment on
// first access. The returned value must be treated as read-only.
func Get() *Config {
	once.Do(func() {
		snapshot = Load()
	})
	return snapshot
}

// Load reads a fresh configuration from .env (if present) and the environment.
func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.WithField("error", err).Debug("No .env file found, using environment variables or defaults")
	}

	return &Config{
		AnalyticsHost: os.Getenv("ANALYTICS_HOST"),
		AnalyticsKey:  os.Getenv("ANALYTICS_KEY"),
		BaseURL:       os.Getenv("BASE_URL"),

		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		FrontendURL:         getEnv("FRONTEND_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTTTL:              getEnvInt("JWT_TTL_HOURS", 24),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:    getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst:  getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		UnitCacheTTLMinutes: getEnvInt("UNIT_CACHE_TTL_MINUTES", 60),
	}
}

// Public returns a copy of the values that are safe to hand to the browser.
func (c *Config) Public() map[string]string {
	return map[string]string{
		KeyAnalyticsHost: c.AnalyticsHost,
		KeyAnalyticsKey:  c.AnalyticsKey,
		KeyBaseURL:       c.BaseURL,
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
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
