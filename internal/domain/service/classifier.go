package service

import "context"

// ClassificationResult is one candidate label produced by a model
type ClassificationResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier defines the interface for text classification
type Classifier interface {
	// Classify returns the candidate labels for text, best first.
	// An empty slice with a nil error means the model produced nothing.
	Classify(ctx context.Context, text, requestID string) ([]*ClassificationResult, error)
}

// HealthChecker is implemented by classifiers that depend on an external service
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
