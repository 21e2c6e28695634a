package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"LessonAnalyzer/internal/config"
	"LessonAnalyzer/internal/domain"
	"LessonAnalyzer/internal/ports"
	"LessonAnalyzer/internal/vibe"
)

var configurationHint = fmt.Sprintf("Set %s in the environment or anthropic.apiKey in the config file", config.APIKeyEnv)

// AnalysisHandler serves the analysis endpoints.
type AnalysisHandler struct {
	analyzer     ports.Analyzer
	vibes        *vibe.Catalog
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewAnalysisHandler builds the handler; maxBodyBytes <= 0 disables the limit.
func NewAnalysisHandler(analyzer ports.Analyzer, vibes *vibe.Catalog, maxBodyBytes int64, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, vibes: vibes, maxBodyBytes: maxBodyBytes, logger: logger}
}

// Analyze handles POST /api/analyze.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var in domain.RawInput
	if err := c.ShouldBindJSON(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		h.debug("request body not decodable", "error", err)
		in = domain.RawInput{}
	}

	if h.analyzer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "analyzer not configured"})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Vibes handles GET /api/vibes.
func (h *AnalysisHandler) Vibes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vibes": h.vibes.List()})
}

func (h *AnalysisHandler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var svcErr *domain.ServiceError
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content and vibe are required"})
	case errors.Is(err, domain.ErrConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   config.APIKeyEnv + " not configured",
			"message": configurationHint,
		})
	case errors.As(err, &svcErr):
		c.JSON(upstreamStatus(svcErr.Status), gin.H{
			"error":   "Failed to analyze content",
			"details": svcErr.Message,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
	}
}

// upstreamStatus keeps the upstream code when it is a valid error status.
func upstreamStatus(status int) int {
	if status < http.StatusBadRequest || status > 599 {
		return http.StatusBadGateway
	}
	return status
}

func (h *AnalysisHandler) debug(msg string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
