package classifier

import (
	"fmt"
	"log/slog"
	"time"
)

// LoadFunc builds a classifier bound to a model identifier.
type LoadFunc func(modelID string) (Classifier, error)

// LoadWithFallback tries the primary model and, if that fails, the fallback.
// There is no third attempt: when both fail the caller should treat it as fatal.
func LoadWithFallback(load LoadFunc, primary, fallback string) (Classifier, error) {
	start := time.Now()
	slog.Info("[ModelLoader] Loading primary model", slog.String("model", primary))

	c, err := load(primary)
	if err == nil {
		slog.Info("[ModelLoader] Primary model loaded",
			slog.String("model", primary),
			slog.Duration("elapsed", time.Since(start)))
		return c, nil
	}

	slog.Warn("[ModelLoader] Primary model failed to load, using fallback",
		slog.String("model", primary),
		slog.String("fallback", fallback),
		slog.String("error", err.Error()))

	c, fallbackErr := load(fallback)
	if fallbackErr != nil {
		slog.Error("[ModelLoader] Fallback model failed to load",
			slog.String("model", fallback),
			slog.String("error", fallbackErr.Error()))
		return nil, fmt.Errorf("%w: primary %s: %v; fallback %s: %v",
			ErrModelLoad, primary, err, fallback, fallbackErr)
	}

	slog.Info("[ModelLoader] Fallback model loaded",
		slog.String("model", fallback),
		slog.Duration("elapsed", time.Since(start)))
	return c, nil
}
