package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/Agnessy-ai/sentiment-analyzer-app/internal/domain/entity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockSentimentUsecase is a mock implementation of SentimentUsecase
type MockSentimentUsecase struct {
	mock.Mock
}

func (m *MockSentimentUsecase) Available() bool {
	return m.Called().Bool(0)
}

func (m *MockSentimentUsecase) LoadError() error {
	return m.Called().Error(0)
}

func (m *MockSentimentUsecase) Analyze(ctx context.Context, text, requestID string) (*entity.AnalysisResult, error) {
	args := m.Called(ctx, text, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AnalysisResult), args.Error(1)
}
