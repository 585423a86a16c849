package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains all runtime settings for the voice audition service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string
	AllowAnyOrigin   bool
	RateLimitPerMin  int

	OutputDir string
	DataDir   string

	Provider        string
	GeminiAPIKey    string
	GeminiBaseURL   string
	OpenAIAPIKey    string
	Concurrency     int
	ProviderTimeout time.Duration

	DatabaseURL string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
}

// Load reads a .env file if present, then environment variables, applying
// safe defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "voicelab"),
		AllowAnyOrigin:   false,
		RateLimitPerMin:  60,
		OutputDir:        envOrDefault("APP_OUTPUT_DIR", "output"),
		DataDir:          envOrDefault("APP_DATA_DIR", "data"),
		Provider:         envOrDefault("TTS_PROVIDER", "auto"),
		GeminiAPIKey:     trimmedEnv("GEMINI_API_KEY"),
		GeminiBaseURL:    trimmedEnv("GEMINI_BASE_URL"),
		OpenAIAPIKey:     trimmedEnv("OPENAI_API_KEY"),
		Concurrency:      5,
		ProviderTimeout:  90 * time.Second,
		DatabaseURL:      trimmedEnv("DATABASE_URL"),
		S3Endpoint:       trimmedEnv("S3_ENDPOINT"),
		S3AccessKey:      trimmedEnv("S3_ACCESS_KEY"),
		S3SecretKey:      trimmedEnv("S3_SECRET_KEY"),
		S3Bucket:         trimmedEnv("S3_BUCKET"),
		S3Region:         trimmedEnv("S3_REGION"),
		ShutdownTimeout:  15 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ProviderTimeout, err = durationFromEnv("TTS_PROVIDER_TIMEOUT", cfg.ProviderTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.Concurrency, err = intFromEnv("TTS_CONCURRENCY", cfg.Concurrency)
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimitPerMin, err = intFromEnv("APP_RATE_LIMIT_PER_MIN", cfg.RateLimitPerMin)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.Concurrency < 1 {
		return Config{}, fmt.Errorf("TTS_CONCURRENCY must be at least 1")
	}
	if cfg.ProviderTimeout < time.Second {
		return Config{}, fmt.Errorf("TTS_PROVIDER_TIMEOUT must be at least 1s")
	}
	if cfg.RateLimitPerMin < 1 {
		return Config{}, fmt.Errorf("APP_RATE_LIMIT_PER_MIN must be at least 1")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
