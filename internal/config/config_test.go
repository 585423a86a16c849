package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_BIND_ADDR", "APP_METRICS_NAMESPACE", "APP_ALLOW_ANY_ORIGIN",
		"APP_RATE_LIMIT_PER_MIN", "APP_OUTPUT_DIR", "APP_DATA_DIR",
		"APP_SHUTDOWN_TIMEOUT", "TTS_PROVIDER", "TTS_CONCURRENCY",
		"TTS_PROVIDER_TIMEOUT", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"DATABASE_URL", "S3_ENDPOINT", "S3_BUCKET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want :8080", cfg.BindAddr)
	}
	if cfg.Provider != "auto" {
		t.Fatalf("Provider = %q, want auto", cfg.Provider)
	}
	if cfg.Concurrency != 5 {
		t.Fatalf("Concurrency = %d, want 5", cfg.Concurrency)
	}
	if cfg.ProviderTimeout != 90*time.Second {
		t.Fatalf("ProviderTimeout = %v, want 90s", cfg.ProviderTimeout)
	}
	if cfg.OutputDir != "output" || cfg.DataDir != "data" {
		t.Fatalf("dirs = %q %q", cfg.OutputDir, cfg.DataDir)
	}
	if cfg.AllowAnyOrigin {
		t.Fatalf("AllowAnyOrigin default = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_BIND_ADDR", ":9999")
	t.Setenv("TTS_PROVIDER", "mock")
	t.Setenv("TTS_CONCURRENCY", "12")
	t.Setenv("TTS_PROVIDER_TIMEOUT", "30s")
	t.Setenv("APP_ALLOW_ANY_ORIGIN", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9999" || cfg.Provider != "mock" || cfg.Concurrency != 12 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ProviderTimeout != 30*time.Second {
		t.Fatalf("ProviderTimeout = %v, want 30s", cfg.ProviderTimeout)
	}
	if !cfg.AllowAnyOrigin {
		t.Fatalf("AllowAnyOrigin = false, want true")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"TTS_CONCURRENCY":        "0",
		"TTS_PROVIDER_TIMEOUT":   "100ms",
		"APP_RATE_LIMIT_PER_MIN": "-1",
		"APP_ALLOW_ANY_ORIGIN":   "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%s succeeded, want error", key, value)
			}
		})
	}
}

func TestLoadNonNumeric(t *testing.T) {
	clearEnv(t)
	t.Setenv("TTS_CONCURRENCY", "lots")
	if _, err := Load(); err == nil {
		t.Fatalf("Load() with non-numeric concurrency succeeded")
	}
}
