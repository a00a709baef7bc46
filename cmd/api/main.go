package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/adapter/http/router"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/service"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/infrastructure/config"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/infrastructure/logger"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/infrastructure/metrics"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/infrastructure/model"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	// Load the model once; a failure leaves the handle unavailable but keeps serving
	log.Info("Loading sentiment analysis pipeline...",
		zap.String("backend", cfg.Model.Backend),
		zap.String("model", cfg.Model.Name),
	)
	classifier, closeModel, loadErr := model.Load(context.Background(), &cfg.Model, log)
	if loadErr != nil {
		log.Error("Error loading sentiment analysis pipeline", zap.Error(loadErr))
	} else {
		log.Info("Sentiment analysis pipeline loaded successfully")
	}
	defer func() {
		if err := closeModel(); err != nil {
			log.Warn("Failed to release model", zap.Error(err))
		}
	}()

	analyzer := usecase.NewSentimentUsecase(classifier, loadErr,
		usecase.WithMaxConcurrency(int64(cfg.Model.MaxConcurrency)),
		usecase.WithMetrics(m),
	)

	// A remote model server is reported on /health
	checks := make(map[string]service.HealthChecker)
	if checker, ok := classifier.(service.HealthChecker); ok {
		checks["model_server"] = checker
	}

	// Setup router
	r := router.Setup(analyzer, checks, reg, m, log)

	// No write timeout: a slow inference call holds its request as long as the model takes
	addr := cfg.Server.Address()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
