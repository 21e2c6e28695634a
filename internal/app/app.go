package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"LessonAnalyzer/internal/config"
	"LessonAnalyzer/internal/infrastructure/content"
	"LessonAnalyzer/internal/infrastructure/httpapi"
	"LessonAnalyzer/internal/infrastructure/llm"
	"LessonAnalyzer/internal/logging"
	"LessonAnalyzer/internal/ports"
	"LessonAnalyzer/internal/usecase"
	"LessonAnalyzer/internal/vibe"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	router   *gin.Engine
}

// New builds the application: model client, content preparer, vibe catalog,
// pipeline and HTTP router.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	if cfg.Anthropic.APIKey == "" {
		baseLogger.Warn("model credential missing, analysis requests will fail", "env", config.APIKeyEnv)
	}

	vibes := vibe.Default()
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Client:   llm.NewAnthropicClient(cfg.Anthropic, baseLogger.With("component", "llm.anthropic")),
		Preparer: content.NewPreparer(cfg.Content, baseLogger.With("component", "content")),
		Vibes:    vibes,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Server:   cfg.Server,
		Analyzer: pipeline,
		Vibes:    vibes,
		Logger:   baseLogger.With("component", "http"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, router: router}
}

// Analyzer exposes the pipeline for one-shot use.
func (a *Application) Analyzer() ports.Analyzer {
	return a.pipeline
}

// Handler exposes the HTTP router.
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves HTTP on the configured address until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves HTTP on ln until ctx is cancelled, then shuts down gracefully.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		timeout := a.cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		a.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})
	return g.Wait()
}
