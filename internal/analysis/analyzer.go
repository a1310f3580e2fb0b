// Package analysis runs the model scorer followed by the Korean heuristics and
// assembles the final result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/emotiflow/internal/enhancer"
	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/scorer"
)

var ErrEmptyText = errors.New("text must not be empty")

// SelfTestSentences is the fixed input of the /test endpoint.
var SelfTestSentences = []string{
	"내가 오늘 너무 행복해",
	"정말 슬퍼서 눈물이 나",
	"완전 화가 나서 미치겠어",
	"그냥 평범한 하루야",
	"깜짝 놀랐어!",
}

// Recorder is notified of every finished analysis. A nil Recorder is allowed.
type Recorder interface {
	RecordAnalysis(method models.AnalysisMethod, emotion models.EmotionLabel, degraded bool)
}

type Analyzer struct {
	scorer   *scorer.Scorer
	recorder Recorder
}

func NewAnalyzer(s *scorer.Scorer, recorder Recorder) *Analyzer {
	return &Analyzer{scorer: s, recorder: recorder}
}

// Analyze trims text and runs it through the scorer and enhancer. Model failures
// do not surface here; they come back as a degraded result with AIError set.
func (a *Analyzer) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.AnalysisResult{}, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("analysis aborted: %w", err)
	}

	ai := a.scorer.Score(ctx, text)
	final := enhancer.Enhance(text, ai.ScoredEmotion)

	result := models.AnalysisResult{
		InputText:     text,
		ScoredEmotion: final.ScoredEmotion,
		Method:        final.Method,
		RawScores:     ai.Scores,
	}
	if ai.Degraded() {
		result.AIError = ai.Cause.Error()
	}

	if a.recorder != nil {
		a.recorder.RecordAnalysis(result.Method, result.Emotion, ai.Degraded())
	}

	slog.Debug("[Analyzer] Analysis complete",
		slog.String("emotion", string(result.Emotion)),
		slog.Int("confidence", result.Confidence),
		slog.String("method", string(result.Method)),
		slog.Float64("multiplier", final.Multiplier),
		slog.String("keyword", final.Keyword),
		slog.String("ai_emotion", string(ai.Emotion)),
		slog.Int("ai_confidence", ai.Confidence))

	return result, nil
}

// SelfTest analyzes every sentence in SelfTestSentences against the live classifier.
func (a *Analyzer) SelfTest(ctx context.Context) ([]models.SelfTestResult, error) {
	results := make([]models.SelfTestResult, 0, len(SelfTestSentences))
	for _, sentence := range SelfTestSentences {
		r, err := a.Analyze(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("self test %q: %w", sentence, err)
		}
		results = append(results, models.SelfTestResult{
			Text:       sentence,
			Emotion:    r.Emotion,
			Confidence: r.Confidence,
		})
	}
	return results, nil
}
