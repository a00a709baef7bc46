package model

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/adapter/client"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/adapter/pipeline"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/service"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/infrastructure/config"
)

// readyTimeout bounds the startup readiness probe of a remote model server
const readyTimeout = 10 * time.Second

// CloseFunc releases model resources at shutdown
type CloseFunc func() error

func noopClose() error { return nil }

// Load builds the configured classifier once. Invalid model settings are
// reported as a load error like any other. The returned CloseFunc is never nil.
func Load(ctx context.Context, cfg *config.ModelConfig, logger *zap.Logger) (service.Classifier, CloseFunc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, noopClose, fmt.Errorf("invalid model configuration: %w", err)
	}

	switch cfg.Backend {
	case config.BackendHugot:
		classifier, closeFn, err := pipeline.Open(pipeline.Options{
			Path:     cfg.Path,
			Name:     cfg.Name,
			CacheDir: cfg.CacheDir,
			OnnxFile: cfg.OnnxFile,
		}, logger)
		if err != nil {
			return nil, noopClose, err
		}
		return classifier, closeFn, nil

	case config.BackendRemote:
		mlClient := client.NewMLClient(cfg.RemoteURL, cfg.RemoteTimeout)

		readyCtx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()
		if err := mlClient.Ready(readyCtx); err != nil {
			return nil, noopClose, fmt.Errorf("model server at %s: %w", cfg.RemoteURL, err)
		}

		return client.NewMLClassifier(mlClient, client.BreakerSettings(logger)), noopClose, nil

	default:
		return nil, noopClose, fmt.Errorf("unknown model backend %q", cfg.Backend)
	}
}
