package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/antoniostano/voicelab/internal/assets"
	"github.com/antoniostano/voicelab/internal/catalog"
	"github.com/antoniostano/voicelab/internal/config"
	"github.com/antoniostano/voicelab/internal/export"
	"github.com/antoniostano/voicelab/internal/httpapi"
	"github.com/antoniostano/voicelab/internal/observability"
	"github.com/antoniostano/voicelab/internal/session"
	"github.com/antoniostano/voicelab/internal/studio"
	"github.com/antoniostano/voicelab/internal/tts"
)

func main() {
	migrate := flag.Bool("migrate", false, "write synthetic sidecars for audio files missing them, then exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	baseLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = baseLogger.Sync() }()
	logger := baseLogger.Sugar()

	store, err := assets.NewStore(cfg.OutputDir)
	if err != nil {
		logger.Fatalw("asset store init failed", "error", err)
	}

	if *migrate {
		n, err := store.MigrateSidecars()
		if err != nil {
			logger.Fatalw("sidecar migration failed", "error", err)
		}
		logger.Infow("sidecar migration complete", "written", n)
		return
	}

	personas, err := catalog.NewStore(filepath.Join(cfg.DataDir, "custom_personas.json"))
	if err != nil {
		logger.Fatalw("persona store init failed", "error", err)
	}

	ctx := context.Background()
	sessionStore, err := session.NewStore(ctx, filepath.Join(cfg.OutputDir, "sessions"), cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("session store init failed", "error", err)
	}
	defer sessionStore.Close()
	sessions := session.NewManager(sessionStore)

	synth := pickProvider(cfg, logger)
	logger.Infow("speech provider selected", "provider", synth.Name())

	metrics := observability.NewMetrics(cfg.MetricsNamespace)
	svc := studio.New(synth, personas, store, sessions, metrics, logger, cfg.Concurrency, cfg.ProviderTimeout)

	exporter, err := export.New(store, filepath.Join(cfg.OutputDir, "exports"), export.S3Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
	}, metrics, logger)
	if err != nil {
		logger.Fatalw("exporter init failed", "error", err)
	}

	api := httpapi.New(cfg, svc, exporter, logger)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		logger.Infow("server listening", "addr", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("listen error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("graceful shutdown failed", "error", err)
		_ = httpServer.Close()
	}
	logger.Infow("shutdown complete")
}

func pickProvider(cfg config.Config, logger *zap.SugaredLogger) tts.Synthesizer {
	mode := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if mode == "" {
		mode = "auto"
	}

	tryGemini := func() tts.Synthesizer {
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return tts.NewGeminiProvider(tts.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.ProviderTimeout,
		})
	}
	tryOpenAI := func() tts.Synthesizer {
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		return tts.NewOpenAIProvider(cfg.OpenAIAPIKey)
	}

	switch mode {
	case "gemini":
		if p := tryGemini(); p != nil {
			return p
		}
		logger.Fatalw("TTS_PROVIDER=gemini but GEMINI_API_KEY is not set")
	case "openai":
		if p := tryOpenAI(); p != nil {
			return p
		}
		logger.Fatalw("TTS_PROVIDER=openai but OPENAI_API_KEY is not set")
	case "mock":
		return tts.NewMockProvider()
	case "auto":
		if p := tryGemini(); p != nil {
			return p
		}
		if p := tryOpenAI(); p != nil {
			return p
		}
		logger.Warnw("no provider credentials found, using mock provider")
		return tts.NewMockProvider()
	default:
		logger.Fatalw("invalid TTS_PROVIDER", "value", cfg.Provider, "expected", "auto|gemini|openai|mock")
	}
	return tts.NewMockProvider()
}
