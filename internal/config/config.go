package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session backends supported by the panel.
const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// BackendURL is the base URL of the course-enrollment REST backend.
	// The panel owns no storage of its own; everything lives there.
	BackendURL string
	// SessionSecret seeds the keys that sign and encrypt session cookies.
	SessionSecret  string
	SessionBackend string
	SessionTTL     time.Duration
	RedisURL       string
	// AllowedOrigins restricts CORS when set. Empty means allow all,
	// which keeps local dev working without extra config.
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:3000"),
		SessionSecret:  getEnv("SESSION_SECRET", "change-this-to-a-secure-random-string"),
		SessionBackend: getEnv("SESSION_BACKEND", SessionBackendCookie),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
