// Package scorer turns a classifier's raw label/score pairs into a single
// emotion from the fixed vocabulary.
package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spacesedan/emotiflow/internal/classifier"
	"github.com/spacesedan/emotiflow/internal/models"
)

const degradedConfidence = 50

var labelMap = map[string]models.EmotionLabel{
	"POSITIVE": models.EmotionHappy,
	"NEGATIVE": models.EmotionSad,
	"NEUTRAL":  models.EmotionNeutral,
	"LABEL_0":  models.EmotionSad,
	"LABEL_1":  models.EmotionNeutral,
	"LABEL_2":  models.EmotionHappy,
}

// MapLabel resolves a raw model label. Labels outside the table are returned
// unchanged.
func MapLabel(raw string) models.EmotionLabel {
	if e, ok := labelMap[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return e
	}
	return models.EmotionLabel(raw)
}

// Outcome is either a scored result or a degraded neutral result with its cause.
type Outcome struct {
	models.ScoredEmotion
	Scores []models.LabelScore
	Cause  error
}

func (o Outcome) Degraded() bool {
	return o.Cause != nil
}

func degraded(cause error) Outcome {
	return Outcome{
		ScoredEmotion: models.ScoredEmotion{Emotion: models.EmotionNeutral, Confidence: degradedConfidence},
		Scores:        []models.LabelScore{},
		Cause:         cause,
	}
}

// Observer receives inference timings and failures. A nil Observer is allowed.
type Observer interface {
	ObserveInference(model string, elapsed time.Duration, err error)
}

type Scorer struct {
	classifier classifier.Classifier
	observer   Observer
}

func New(c classifier.Classifier, observer Observer) *Scorer {
	return &Scorer{classifier: c, observer: observer}
}

// Score never returns an error: classifier failures produce a degraded Outcome.
func (s *Scorer) Score(ctx context.Context, text string) Outcome {
	start := time.Now()
	raw, err := s.classifier.Classify(ctx, text)
	if err == nil && len(raw) == 0 {
		err = classifier.ErrNoScores
	}
	if s.observer != nil {
		s.observer.ObserveInference(s.classifier.Name(), time.Since(start), err)
	}
	if err != nil {
		slog.Warn("[Scorer] Inference failed, degrading to neutral",
			slog.String("model", s.classifier.Name()),
			slog.String("error", err.Error()))
		return degraded(fmt.Errorf("inference failed: %w", err))
	}

	scores := make([]models.LabelScore, len(raw))
	best := 0
	for i, r := range raw {
		scores[i] = models.LabelScore{Emotion: MapLabel(r.Label), Score: toPercent(r.Score)}
		if r.Score > raw[best].Score {
			best = i
		}
	}

	primary := models.ScoredEmotion{
		Emotion:    MapLabel(raw[best].Label),
		Confidence: toPercent(raw[best].Score),
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return Outcome{ScoredEmotion: primary, Scores: scores}
}

func toPercent(score float64) int {
	return models.ClampConfidence(int(math.Round(score * 100)))
}
