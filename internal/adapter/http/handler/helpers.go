package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogPreviewRunes is how much of the submitted text is written to logs
const LogPreviewRunes = 50

// TruncateText cuts s to at most n runes, never splitting a UTF-8 sequence.
func TruncateText(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func requestIDField(c *gin.Context) zap.Field {
	return zap.String("request_id", c.GetString("request_id"))
}
