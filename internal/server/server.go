// Package server exposes the emotion analyzer over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spacesedan/emotiflow/internal/metrics"
	"github.com/spacesedan/emotiflow/internal/models"
)

type Analyzer interface {
	Analyze(ctx context.Context, text string) (models.AnalysisResult, error)
	SelfTest(ctx context.Context) ([]models.SelfTestResult, error)
}

type Deps struct {
	Analyzer Analyzer
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Healthy reflects the most recent classifier probe. Nil means always ready.
	Healthy *atomic.Bool
	Model   string
}

type Server struct {
	echo      *echo.Echo
	addr      string
	analyzer  Analyzer
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	healthy   *atomic.Bool
	model     string
	startTime time.Time
}

func NewServer(addr string, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}

	srv := &Server{
		echo:      e,
		addr:      addr,
		analyzer:  deps.Analyzer,
		metrics:   deps.Metrics,
		gatherer:  deps.Gatherer,
		healthy:   deps.Healthy,
		model:     deps.Model,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("[Server] Starting server", slog.String("addr", s.addr))
	err := s.echo.Start(s.addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				slog.LogAttrs(c.Request().Context(), slog.LevelError, "[Server] Request failed", attrs...)
				return nil
			}
			slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "[Server] Request", attrs...)
			return nil
		},
	})
}
