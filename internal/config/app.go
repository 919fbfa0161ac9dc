package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return port
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func SessionTTL() (time.Duration, error) {
	ttlStr, ok := os.LookupEnv("SESSION_TTL")
	if !ok {
		return time.Hour, nil
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	return ttl, nil
}

func lookupInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return v, nil
}
