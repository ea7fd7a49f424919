package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Feeds     FeedsConfig
	Catalog   CatalogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	Host        string
	MetricsPort int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// FeedCredentials holds one brand's affiliate feed endpoint and its Basic
// auth pair. Empty values are allowed at startup; an unconfigured feed fails
// at request time so the other brands keep working.
type FeedCredentials struct {
	URL      string
	Username string
	Password string
	Timeout  int // seconds
}

// FeedsConfig holds the per-brand feed credentials.
type FeedsConfig struct {
	Realm    FeedCredentials
	Throne   FeedCredentials
	Bluffbet FeedCredentials
}

// CatalogConfig holds the Supabase brand catalog configuration
type CatalogConfig struct {
	ProjectURL     string
	ServiceRoleKey string
	Bucket         string
	Object         string
	TTLSeconds     int
}

// CORSConfig holds the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds per-IP rate limiting settings
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Feeds: FeedsConfig{
			Realm:    loadFeedCredentials("REALM"),
			Throne:   loadFeedCredentials("THRONE"),
			Bluffbet: loadFeedCredentials("BLUFFBET"),
		},
		Catalog: CatalogConfig{
			ProjectURL:     getEnv("SUPABASE_URL", ""),
			ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			Bucket:         getEnv("BRANDS_BUCKET", "brands"),
			Object:         getEnv("BRANDS_OBJECT", "brands.json"),
			TTLSeconds:     getEnvAsInt("BRANDS_CACHE_TTL", 300),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: float64(getEnvAsInt("RATE_LIMIT_RPS", 5)),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
	}

	return cfg, nil
}

// loadFeedCredentials reads one brand's feed settings. The Basic auth pair
// falls back to the shared MA_FEED_USER / MA_FEED_PASS when the brand has no
// override.
func loadFeedCredentials(brand string) FeedCredentials {
	return FeedCredentials{
		URL:      getEnv("MA_"+brand+"_FEED_URL", ""),
		Username: getEnv("MA_"+brand+"_FEED_USER", getEnv("MA_FEED_USER", "")),
		Password: getEnv("MA_"+brand+"_FEED_PASS", getEnv("MA_FEED_PASS", "")),
		Timeout:  getEnvAsInt("MA_FEED_TIMEOUT", 30),
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
