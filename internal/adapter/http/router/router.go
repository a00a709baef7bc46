package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/adapter/http/handler"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/adapter/http/middleware"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/service"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/infrastructure/metrics"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/usecase"
	"github.com/Agnessy-ai/sentiment-analyzer-app/web"
)

// Routes
const (
	IndexPath   = "/"
	AnalyzePath = "/analyze_sentiment"
)

const pageTitle = "Sentiment Analyzer"

// Setup creates and configures the Gin router.
// checks are extra dependencies reported by /health.
func Setup(
	analyzer usecase.SentimentUsecase,
	checks map[string]service.HealthChecker,
	reg *prometheus.Registry,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(web.Templates)

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(analyzer, checks)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	if reg != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(reg)))
	}

	pageHandler := handler.NewPageHandler(pageTitle, AnalyzePath)
	sentimentHandler := handler.NewSentimentHandler(analyzer, logger)

	router.GET(IndexPath, pageHandler.Index)
	router.POST(AnalyzePath, sentimentHandler.AnalyzeSentiment)

	return router
}
