package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"LessonAnalyzer/internal/config"
	"LessonAnalyzer/internal/ports"
	"LessonAnalyzer/internal/vibe"
)

// RouterConfig carries the handlers' collaborators.
type RouterConfig struct {
	Server   config.ServerConfig
	Analyzer ports.Analyzer
	Vibes    *vibe.Catalog
	Logger   *slog.Logger
}

// NewRouter builds the gin engine serving the public API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(cfg.Logger))

	if len(cfg.Server.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.Server.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Content-Type", "X-Requested-With", RequestIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
		}))
	}

	analysis := NewAnalysisHandler(cfg.Analyzer, cfg.Vibes, cfg.Server.MaxBodyBytes, cfg.Logger)

	router.GET("/healthcheck", HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/analyze", analysis.Analyze)
		api.GET("/vibes", analysis.Vibes)
	}

	return router
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
