// Package metrics exposes Prometheus instrumentation for the analysis
// pipeline and the HTTP layer.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spacesedan/emotiflow/internal/models"
)

const namespace = "emotiflow"

type Metrics struct {
	AnalysesTotal     *prometheus.CounterVec
	DegradedTotal     prometheus.Counter
	InferenceDuration *prometheus.HistogramVec
	InferenceErrors   *prometheus.CounterVec
	ClassifierHealthy prometheus.Gauge

	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// New creates and registers every metric on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "results_total",
			Help:      "Finished analyses by selection method and final emotion.",
		}, []string{"method", "emotion"}),
		DegradedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "degraded_total",
			Help:      "Analyses that fell back to the neutral result after an inference failure.",
		}),
		InferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "duration_seconds",
			Help:      "Duration of classifier calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"model"}),
		InferenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "errors_total",
			Help:      "Classifier calls that returned an error.",
		}, []string{"model"}),
		ClassifierHealthy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "healthy",
			Help:      "1 when the last classifier probe succeeded.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.DegradedTotal,
		m.InferenceDuration,
		m.InferenceErrors,
		m.ClassifierHealthy,
		m.RequestDuration,
		m.RequestsTotal,
	)
	return m
}

func (m *Metrics) RecordAnalysis(method models.AnalysisMethod, emotion models.EmotionLabel, degraded bool) {
	m.AnalysesTotal.WithLabelValues(string(method), string(emotion)).Inc()
	if degraded {
		m.DegradedTotal.Inc()
	}
}

func (m *Metrics) ObserveInference(model string, elapsed time.Duration, err error) {
	m.InferenceDuration.WithLabelValues(model).Observe(elapsed.Seconds())
	if err != nil {
		m.InferenceErrors.WithLabelValues(model).Inc()
	}
}

func (m *Metrics) SetClassifierHealthy(healthy bool) {
	if healthy {
		m.ClassifierHealthy.Set(1)
		return
	}
	m.ClassifierHealthy.Set(0)
}

// Middleware records request metrics, skipping /metrics and /health/*.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "/metrics" || strings.HasPrefix(path, "/health/") {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error response so the status below is the one sent.
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			m.RequestDuration.WithLabelValues(c.Request().Method, path, status).Observe(time.Since(start).Seconds())
			m.RequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			return err
		}
	}
}
