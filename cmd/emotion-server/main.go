package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spacesedan/emotiflow/config"
	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/classifier"
	"github.com/spacesedan/emotiflow/internal/classifier/hugotbackend"
	"github.com/spacesedan/emotiflow/internal/logging"
	"github.com/spacesedan/emotiflow/internal/metrics"
	"github.com/spacesedan/emotiflow/internal/monitoring"
	"github.com/spacesedan/emotiflow/internal/scorer"
	"github.com/spacesedan/emotiflow/internal/server"
)

func main() {
	config.LoadEnv(config.AppEnv())

	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger(logging.Options{Level: slog.LevelInfo})
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(logging.Options{Level: cfg.SlogLevel(), NoColor: cfg.NoColor})

	if err := run(cfg); err != nil {
		slog.Error("[Main] Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	slog.Info("[Main] Loading emotion classifier",
		slog.String("env", cfg.AppEnv),
		slog.String("backend", cfg.ClassifierBackend))

	c, closeClassifier, err := buildClassifier(cfg)
	if err != nil {
		return err
	}
	defer closeClassifier()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	analyzer := analysis.NewAnalyzer(scorer.New(c, m), m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var healthy atomic.Bool
	go monitoring.MonitorClassifierHealth(ctx, c, cfg.HealthcheckInterval, cfg.ProbeTimeout, &healthy, m)

	srv := server.NewServer(cfg.Addr(), server.Deps{
		Analyzer: analyzer,
		Metrics:  m,
		Gatherer: reg,
		Healthy:  &healthy,
		Model:    c.Name(),
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("[Main] Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// buildClassifier is the only place the process touches model loading; a
// failure here, including the fallback model, is fatal.
func buildClassifier(cfg *config.Config) (classifier.Classifier, func(), error) {
	if cfg.ClassifierBackend == config.BackendVader {
		return classifier.NewVaderClassifier(), func() {}, nil
	}

	loader, err := hugotbackend.NewLoader(cfg.ModelDir)
	if err != nil {
		return nil, nil, err
	}
	closeLoader := func() {
		if err := loader.Close(); err != nil {
			slog.Warn("[Main] Failed to destroy hugot session", slog.String("error", err.Error()))
		}
	}

	c, err := classifier.LoadWithFallback(loader.Load, cfg.PrimaryModel, cfg.FallbackModel)
	if err != nil {
		closeLoader()
		return nil, nil, err
	}
	return c, closeLoader, nil
}
