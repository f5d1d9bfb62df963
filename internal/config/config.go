package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseURL string

	TokenSecret     string
	TokenTTLMinutes int

	StoreTimeoutMillis int

	RateLimitPerMinute      int
	RateLimitBurst          int
	EmailRateLimitPerMinute int
	EmailRateLimitBurst     int

	OTLPEndpoint string
	OTLPInsecure bool
}

func Load() Config {
	port := os.Getenv("AUTH_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:        port,
		DatabaseURL: os.Getenv("DB_DSN"),

		TokenSecret:     os.Getenv("AUTH_TOKEN_SECRET"),
		TokenTTLMinutes: readInt("AUTH_TOKEN_TTL_MIN", 60),

		StoreTimeoutMillis: readInt("AUTH_STORE_TIMEOUT_MS", 5000),

		RateLimitPerMinute:      readInt("AUTH_RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:          readInt("AUTH_RATE_LIMIT_BURST", 30),
		EmailRateLimitPerMinute: readInt("AUTH_EMAIL_RATE_LIMIT_PER_MIN", 30),
		EmailRateLimitBurst:     readInt("AUTH_EMAIL_RATE_LIMIT_BURST", 10),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure: os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
