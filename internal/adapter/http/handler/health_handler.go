package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/service"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/usecase"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	analyzer usecase.SentimentUsecase
	checks   map[string]service.HealthChecker
}

// NewHealthHandler creates a new health handler. Each entry in checks is
// reported as a component of /health under its key.
func NewHealthHandler(analyzer usecase.SentimentUsecase, checks map[string]service.HealthChecker) *HealthHandler {
	return &HealthHandler{
		analyzer: analyzer,
		checks:   checks,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	healthy := true

	switch {
	case h.analyzer == nil:
		components["model"] = "not configured"
		healthy = false
	case h.analyzer.Available():
		components["model"] = "ok"
	default:
		reason := "unknown error"
		if err := h.analyzer.LoadError(); err != nil {
			reason = err.Error()
		}
		components["model"] = "unavailable: " + reason
		healthy = false
	}

	for name, check := range h.checks {
		if err := check.CheckHealth(ctx); err != nil {
			components[name] = "error: " + err.Error()
			healthy = false
		} else {
			components[name] = "ok"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.analyzer == nil || !h.analyzer.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "model not available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
