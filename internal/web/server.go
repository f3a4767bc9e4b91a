// Package web serves the churn form and JSON prediction API over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/churn/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Assessor produces an assessment for one customer. It must be safe for
// concurrent use.
type Assessor interface {
	Assess(c model.CustomerData) (model.Assessment, error)
}

// Config controls the HTTP server. The gin mode is process-wide and is set
// by the caller with gin.SetMode before New.
type Config struct {
	Addr           string
	CreditScoreMax int
}

// Server wires the handlers to a gin engine.
type Server struct {
	assessor Assessor
	metrics  *metrics
	engine   *gin.Engine
	registry *prometheus.Registry
	config   Config
}

// New builds a server around assessor.
func New(assessor Assessor, cfg Config) (*Server, error) {
	if assessor == nil {
		return nil, errors.New("assessor is required")
	}
	tmpl, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		assessor: assessor,
		config:   cfg,
		registry: registry,
		metrics:  newMetrics(registry),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), requestLogger())
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.form)
	engine.POST("/", s.submit)
	engine.GET("/health", s.health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := engine.Group("/api/v1")
	{
		api.POST("/predict", s.predict)
	}

	s.engine = engine
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
