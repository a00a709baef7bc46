package client

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/service"
)

// MLClassifier adapts MLClient to the Classifier interface.
// Calls go through a circuit breaker so a dead model server fails fast.
type MLClassifier struct {
	client *MLClient
	cb     *gobreaker.CircuitBreaker
}

// BreakerSettings returns the circuit breaker settings used for the model server:
// trip at a 60% failure rate over at least 5 requests, probe again after 30s.
func BreakerSettings(logger *zap.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "model-server",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.Warn("Circuit breaker state changed",
				zap.String("component", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
}

// NewMLClassifier creates a new MLClassifier
func NewMLClassifier(client *MLClient, settings gobreaker.Settings) service.Classifier {
	return &MLClassifier{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(settings),
	}
}

// Classify classifies a single text, best candidate first
func (c *MLClassifier) Classify(ctx context.Context, text, requestID string) ([]*service.ClassificationResult, error) {
	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.Classify(ctx, text, requestID)
	})
	if err != nil {
		return nil, err
	}

	resp := out.(*ClassifyResponse)
	results := make([]*service.ClassificationResult, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		results = append(results, &service.ClassificationResult{
			Label: p.Label,
			Score: p.Score,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// State exposes the breaker state for health reporting
func (c *MLClassifier) State() gobreaker.State {
	return c.cb.State()
}

// CheckHealth fails while the breaker is open or the model server has no model loaded
func (c *MLClassifier) CheckHealth(ctx context.Context) error {
	if state := c.State(); state == gobreaker.StateOpen {
		return fmt.Errorf("circuit breaker %s", state)
	}

	health, err := c.client.Health(ctx)
	if err != nil {
		return err
	}
	if !health.ModelLoaded {
		return fmt.Errorf("model server has no model loaded (status %q)", health.Status)
	}

	return nil
}
