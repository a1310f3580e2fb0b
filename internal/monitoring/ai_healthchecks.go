package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/emotiflow/internal/classifier"
)

const (
	DefaultHealthcheckInterval = 15 * time.Second
	probeText                  = "오늘 기분 어때"
)

type HealthReporter interface {
	SetClassifierHealthy(healthy bool)
}

// ProbeClassifier runs one inference on a fixed sentence.
func ProbeClassifier(ctx context.Context, c classifier.Classifier, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := c.Classify(ctx, probeText)
	if err != nil {
		slog.Warn("[HealthCheck] Classifier probe failed",
			slog.String("model", c.Name()),
			slog.String("error", err.Error()))
		return false
	}
	return len(raw) > 0
}

// MonitorClassifierHealth probes immediately and then every interval until ctx
// is done, storing the latest result in healthy.
func MonitorClassifierHealth(ctx context.Context, c classifier.Classifier, interval, timeout time.Duration, healthy *atomic.Bool, reporter HealthReporter) {
	check := func() {
		isHealthy := ProbeClassifier(ctx, c, timeout)
		healthy.Store(isHealthy)
		if reporter != nil {
			reporter.SetClassifierHealthy(isHealthy)
		}
		if !isHealthy {
			slog.Warn("[HealthCheck] Classifier is unhealthy", slog.String("model", c.Name()))
		}
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
