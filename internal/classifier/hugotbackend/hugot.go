// Package hugotbackend runs ONNX text-classification models through hugot.
// It is imported only by the server binary so the rest of the module builds
// without the native tokenizer library.
package hugotbackend

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/emotiflow/internal/classifier"
	"github.com/spacesedan/emotiflow/internal/models"
)

// Loader owns the ONNX Runtime session that every pipeline is attached to.
type Loader struct {
	session  *hugot.Session
	modelDir string
}

func NewLoader(modelDir string) (*Loader, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	return &Loader{session: session, modelDir: modelDir}, nil
}

// Load downloads modelID into the model directory when missing and builds a
// text-classification pipeline that reports a softmax score for every label.
func (l *Loader) Load(modelID string) (classifier.Classifier, error) {
	modelPath, err := l.ensureModel(modelID)
	if err != nil {
		return nil, err
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      modelID,
		Options: []hugot.TextClassificationOption{
			pipelines.WithMultiLabel(),
			pipelines.WithSoftmax(),
		},
	}
	pipeline, err := hugot.NewPipeline(l.session, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pipeline for %s: %w", modelID, err)
	}

	return &Classifier{modelID: modelID, pipeline: pipeline}, nil
}

func (l *Loader) ensureModel(modelID string) (string, error) {
	modelPath := filepath.Join(l.modelDir, classifier.ModelDirName(modelID))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotLoader] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	}

	slog.Info("[HugotLoader] Model not found, downloading...", slog.String("model", modelID))
	downloaded, err := hugot.DownloadModel(modelID, l.modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", modelID, err)
	}
	slog.Info("[HugotLoader] Model downloaded successfully", slog.String("path", downloaded))
	return downloaded, nil
}

func (l *Loader) Close() error {
	if l.session == nil {
		return nil
	}
	return l.session.Destroy()
}

// Classifier runs one pipeline call at a time; the ONNX session gives no
// guarantee about concurrent RunPipeline calls.
type Classifier struct {
	modelID  string
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.Mutex
}

func (h *Classifier) Name() string {
	return h.modelID
}

func (h *Classifier) Classify(ctx context.Context, text string) (models.RawClassification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	output, err := h.pipeline.RunPipeline([]string{text})
	h.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("pipeline %s failed: %w", h.modelID, err)
	}

	return classifier.FirstBatch(output.ClassificationOutputs, func(o pipelines.ClassificationOutput) models.RawScore {
		return models.RawScore{Label: o.Label, Score: float64(o.Score)}
	})
}
