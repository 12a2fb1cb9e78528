package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Endpoint          string
	UserAgent         string
	RequestTimeout    time.Duration
	DetailConcurrency int
	LogLevel          string
	LogFormat         string
}

// LoadConfig reads the optional environment overrides. Unset variables keep
// the library defaults: zero values mean "use the default".
func LoadConfig() Config {
	return Config{
		Endpoint:          getEnv("TORRENT_SEARCH_ENDPOINT", ""),
		UserAgent:         getEnv("TORRENT_SEARCH_USER_AGENT", ""),
		RequestTimeout:    time.Duration(getEnvInt("TORRENT_SEARCH_TIMEOUT_SECONDS", 0)) * time.Second,
		DetailConcurrency: getEnvInt("TORRENT_SEARCH_DETAIL_CONCURRENCY", 0),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
