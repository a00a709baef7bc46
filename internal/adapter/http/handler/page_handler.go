package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexTemplate is the template name rendered at the site root
const IndexTemplate = "index.html"

// PageHandler serves the client-facing page
type PageHandler struct {
	title       string
	analyzePath string
}

// NewPageHandler creates a page handler whose form posts to analyzePath
func NewPageHandler(title, analyzePath string) *PageHandler {
	return &PageHandler{title: title, analyzePath: analyzePath}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, IndexTemplate, gin.H{
		"Title":       h.title,
		"AnalyzePath": h.analyzePath,
	})
}
