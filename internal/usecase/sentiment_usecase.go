package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/entity"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/service"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/infrastructure/metrics"
)

// Error definitions for sentiment usecase
var (
	ErrModelUnavailable = errors.New("sentiment analysis model not available")
	ErrEmptyResult      = errors.New("sentiment model returned an empty result")
)

// InferenceError wraps a failure raised by the model itself.
// Error returns the model message unchanged.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// SentimentUsecase is the process-wide handle to the sentiment model
type SentimentUsecase interface {
	// Available reports whether the model loaded at startup
	Available() bool

	// LoadError returns why the model is unavailable, or nil
	LoadError() error

	// Analyze classifies text and returns the top-ranked sentiment.
	// Errors are ErrModelUnavailable, ErrEmptyResult or *InferenceError.
	Analyze(ctx context.Context, text, requestID string) (*entity.AnalysisResult, error)
}

// Option configures a sentiment usecase
type Option func(*sentimentUsecase)

// WithMaxConcurrency bounds simultaneous model calls. Values below 1 mean 1.
func WithMaxConcurrency(n int64) Option {
	return func(u *sentimentUsecase) {
		if n < 1 {
			n = 1
		}
		u.sem = semaphore.NewWeighted(n)
	}
}

// WithMetrics records analysis outcomes and inference latency
func WithMetrics(m *metrics.Metrics) Option {
	return func(u *sentimentUsecase) {
		u.metrics = m
	}
}

type sentimentUsecase struct {
	classifier service.Classifier
	loadErr    error
	sem        *semaphore.Weighted
	metrics    *metrics.Metrics
}

// NewSentimentUsecase creates the model handle. A non-nil loadErr or a nil
// classifier makes the handle unavailable for the lifetime of the process.
func NewSentimentUsecase(classifier service.Classifier, loadErr error, opts ...Option) SentimentUsecase {
	u := &sentimentUsecase{
		classifier: classifier,
		loadErr:    loadErr,
		sem:        semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(u)
	}

	if u.loadErr == nil && u.classifier == nil {
		u.loadErr = ErrModelUnavailable
	}
	if u.loadErr != nil {
		u.classifier = nil
	}

	u.metrics.SetModelAvailable(u.classifier != nil)
	return u
}

func (u *sentimentUsecase) Available() bool {
	return u.classifier != nil
}

func (u *sentimentUsecase) LoadError() error {
	return u.loadErr
}

func (u *sentimentUsecase) Analyze(ctx context.Context, text, requestID string) (*entity.AnalysisResult, error) {
	if u.classifier == nil {
		u.metrics.ObserveAnalysis(metrics.OutcomeUnavailable)
		return nil, ErrModelUnavailable
	}

	if err := u.sem.Acquire(ctx, 1); err != nil {
		u.metrics.ObserveAnalysis(metrics.OutcomeError)
		return nil, &InferenceError{Err: err}
	}
	defer u.sem.Release(1)

	// Once started, inference runs to completion even if the client goes away.
	start := time.Now()
	candidates, err := u.classify(context.WithoutCancel(ctx), text, requestID)
	u.metrics.ObserveInference(time.Since(start))
	if err != nil {
		u.metrics.ObserveAnalysis(metrics.OutcomeError)
		return nil, &InferenceError{Err: err}
	}

	if len(candidates) == 0 || candidates[0] == nil {
		u.metrics.ObserveAnalysis(metrics.OutcomeEmpty)
		return nil, ErrEmptyResult
	}

	u.metrics.ObserveAnalysis(metrics.OutcomeOK)
	top := candidates[0]
	return entity.NewAnalysisResult(top.Label, top.Score), nil
}

// classify turns a panic inside the model into an ordinary error.
func (u *sentimentUsecase) classify(ctx context.Context, text, requestID string) (candidates []*service.ClassificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return u.classifier.Classify(ctx, text, requestID)
}
