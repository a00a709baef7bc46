// Package pipeline runs a HuggingFace text-classification model in-process
// through hugot and exposes it as a service.Classifier.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/service"
)

const pipelineName = "sentiment-analysis"

// Runner is the part of a hugot text-classification pipeline the classifier uses
type Runner interface {
	RunPipeline(inputs []string) (*pipelines.TextClassificationOutput, error)
}

// Classifier adapts a pipeline Runner to the Classifier interface
type Classifier struct {
	runner Runner
}

// NewClassifier wraps runner
func NewClassifier(runner Runner) *Classifier {
	return &Classifier{runner: runner}
}

// Classify runs text through the pipeline and returns its labels, best first
func (c *Classifier) Classify(_ context.Context, text, _ string) ([]*service.ClassificationResult, error) {
	out, err := c.runner.RunPipeline([]string{text})
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.ClassificationOutputs) == 0 {
		return nil, nil
	}

	candidates := out.ClassificationOutputs[0]
	results := make([]*service.ClassificationResult, 0, len(candidates))
	for _, o := range candidates {
		results = append(results, &service.ClassificationResult{
			Label: o.Label,
			Score: float64(o.Score),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// Options locate the model to load
type Options struct {
	// Path is a local model directory; when empty Name is downloaded into CacheDir
	Path     string
	Name     string
	CacheDir string
	OnnxFile string
}

// Open starts a pure-Go hugot session and builds the sentiment pipeline.
// The returned close function destroys the session.
func Open(opts Options, logger *zap.Logger) (*Classifier, func() error, error) {
	modelPath, err := resolveModelPath(opts, logger)
	if err != nil {
		return nil, nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	pipe, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath:    modelPath,
		Name:         pipelineName,
		OnnxFilename: opts.OnnxFile,
	})
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			logger.Warn("Failed to destroy hugot session", zap.Error(destroyErr))
		}
		return nil, nil, fmt.Errorf("failed to create %s pipeline from %s: %w", pipelineName, modelPath, err)
	}

	return NewClassifier(pipe), session.Destroy, nil
}

// CachedModelPath is where hugot stores a downloaded model under cacheDir
func CachedModelPath(cacheDir, name string) string {
	return filepath.Join(cacheDir, strings.ReplaceAll(name, "/", "_"))
}

func resolveModelPath(opts Options, logger *zap.Logger) (string, error) {
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return "", fmt.Errorf("model path %s: %w", opts.Path, err)
		}
		return opts.Path, nil
	}
	if opts.Name == "" {
		return "", errors.New("no model path or model name configured")
	}

	cached := CachedModelPath(opts.CacheDir, opts.Name)
	if _, err := os.Stat(cached); err == nil {
		logger.Info("Using cached model", zap.String("path", cached))
		return cached, nil
	}

	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model cache dir: %w", err)
	}

	logger.Info("Downloading model, this may take a moment",
		zap.String("model", opts.Name),
		zap.String("cache_dir", opts.CacheDir),
	)
	downloadOpts := hugot.NewDownloadOptions()
	if opts.OnnxFile != "" {
		downloadOpts.OnnxFilePath = opts.OnnxFile
	}
	path, err := hugot.DownloadModel(opts.Name, opts.CacheDir, downloadOpts)
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", opts.Name, err)
	}
	return path, nil
}
