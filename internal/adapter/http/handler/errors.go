package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/usecase"
)

// Client-facing error messages
const (
	MsgModelUnavailable = "Sentiment analysis model not available."
	MsgNoText           = "No text provided"
	MsgEmptyResult      = "Could not analyze sentiment."
	MsgAnalysisPrefix   = "Error during analysis: "
	MsgInternal         = "internal server error"
)

// ErrorMapping is the HTTP rendering of an analysis error
type ErrorMapping struct {
	StatusCode int
	Message    string
}

// MapAnalysisError maps usecase errors to HTTP error responses.
func MapAnalysisError(err error) ErrorMapping {
	var inferenceErr *usecase.InferenceError

	switch {
	case errors.Is(err, usecase.ErrModelUnavailable):
		return ErrorMapping{StatusCode: http.StatusInternalServerError, Message: MsgModelUnavailable}
	case errors.Is(err, usecase.ErrEmptyResult):
		return ErrorMapping{StatusCode: http.StatusInternalServerError, Message: MsgEmptyResult}
	case errors.As(err, &inferenceErr):
		return ErrorMapping{StatusCode: http.StatusInternalServerError, Message: MsgAnalysisPrefix + inferenceErr.Error()}
	default:
		return ErrorMapping{StatusCode: http.StatusInternalServerError, Message: MsgInternal}
	}
}

// HandleAnalysisError logs err and sends the mapped JSON error response.
func HandleAnalysisError(c *gin.Context, logger *zap.Logger, err error) {
	mapped := MapAnalysisError(err)

	switch {
	case errors.Is(err, usecase.ErrEmptyResult):
		logger.Error("Sentiment pipeline returned an empty result.", requestIDField(c))
	case errors.Is(err, usecase.ErrModelUnavailable):
		logger.Error("Sentiment analysis requested but model is not available", requestIDField(c))
	default:
		logger.Error("Error during sentiment analysis", zap.Error(err), requestIDField(c))
	}

	respondError(c, mapped.StatusCode, mapped.Message)
}

// HandleNoText sends the missing-text response.
func HandleNoText(c *gin.Context) {
	respondError(c, http.StatusBadRequest, MsgNoText)
}
