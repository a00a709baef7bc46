package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/entity"
	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/usecase"
)

// SentimentHandler handles sentiment analysis requests
type SentimentHandler struct {
	analyzer usecase.SentimentUsecase
	logger   *zap.Logger
}

// NewSentimentHandler creates a new sentiment handler
func NewSentimentHandler(analyzer usecase.SentimentUsecase, logger *zap.Logger) *SentimentHandler {
	return &SentimentHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// AnalyzeSentiment handles POST /analyze_sentiment
func (h *SentimentHandler) AnalyzeSentiment(c *gin.Context) {
	if !h.analyzer.Available() {
		HandleAnalysisError(c, h.logger, usecase.ErrModelUnavailable)
		return
	}

	// Malformed JSON, a non-object body and a non-string text all count as no text.
	var req entity.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		if err != nil {
			h.logger.Warn("Could not read analysis request body", zap.Error(err), requestIDField(c))
		}
		HandleNoText(c)
		return
	}

	h.logger.Info("Received text for analysis",
		zap.String("text", TruncateText(req.Text, LogPreviewRunes)),
		zap.Int("length", len(req.Text)),
		requestIDField(c),
	)

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Text, c.GetString("request_id"))
	if err != nil {
		HandleAnalysisError(c, h.logger, err)
		return
	}

	h.logger.Info("Analysis result",
		zap.String("label", result.Label),
		zap.Float64("score", result.Score),
		requestIDField(c),
	)

	c.JSON(http.StatusOK, SentimentResponse{
		Sentiment: strings.ToUpper(result.Label),
		Score:     result.Score,
	})
}
