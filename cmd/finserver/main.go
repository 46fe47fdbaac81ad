// cmd/finserver/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/config"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/observability"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/oracle"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/pipeline"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/providers"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/server"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting financial AI server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Reinitialize the logger now that config told us how to log.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracingEndpoint := ""
	if cfg.Tracing.Enabled {
		tracingEndpoint = cfg.Tracing.Endpoint
	}
	tracing := observability.NewTracing(cfg.App.Name, tracingEndpoint)
	defer tracing.Shutdown()

	registry := providers.NewRegistry(&cfg.Providers, log)
	zapLog.Info("provider registry ready", zap.Int("providers", registry.Size()))

	gemini := oracle.NewGemini(&oracle.Config{
		BaseURL:     cfg.Oracle.BaseURL,
		Model:       cfg.Oracle.Model,
		APIKey:      cfg.Oracle.APIKey,
		Timeout:     cfg.Oracle.GetTimeout(),
		MaxRetries:  cfg.Oracle.MaxRetries,
		Temperature: cfg.Oracle.Temperature,
	}, log)

	orchestrator := pipeline.NewOrchestrator(gemini, registry, pipeline.Options{
		QualityThreshold:     cfg.Pipeline.QualityThreshold,
		MaxSteps:             cfg.Pipeline.MaxSteps,
		MaxConcurrentFetches: cfg.Pipeline.MaxConcurrentFetches,
	}, tracing, obs, log)

	srv := server.New(cfg.Server, orchestrator, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("server stopped")
}
