package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	raw models.RawClassification
	err error
}

func (s stubClassifier) Name() string { return "stub" }

func (s stubClassifier) Classify(_ context.Context, _ string) (models.RawClassification, error) {
	return s.raw, s.err
}

type countingRecorder struct {
	methods  []models.AnalysisMethod
	degraded int
}

func (c *countingRecorder) RecordAnalysis(method models.AnalysisMethod, _ models.EmotionLabel, degraded bool) {
	c.methods = append(c.methods, method)
	if degraded {
		c.degraded++
	}
}

var neutralLeaning = models.RawClassification{
	{Label: "LABEL_0", Score: 0.15},
	{Label: "LABEL_1", Score: 0.6},
	{Label: "LABEL_2", Score: 0.25},
}

func newAnalyzer(c stubClassifier, rec Recorder) *Analyzer {
	return NewAnalyzer(scorer.New(c, nil), rec)
}

func TestAnalyze_DirectMatch(t *testing.T) {
	rec := &countingRecorder{}
	a := newAnalyzer(stubClassifier{raw: neutralLeaning}, rec)

	r, err := a.Analyze(context.Background(), "  내가 오늘 너무 행복해  ")

	require.NoError(t, err)
	assert.Equal(t, "내가 오늘 너무 행복해", r.InputText)
	assert.Equal(t, models.EmotionHappy, r.Emotion)
	assert.Equal(t, 96, r.Confidence)
	assert.Equal(t, models.MethodDirectKoreanMatch, r.Method)
	assert.Equal(t, "happy 96%", r.Message())
	assert.Len(t, r.RawScores, 3)
	assert.Equal(t, models.EmotionNeutral, r.RawScores[0].Emotion)
	assert.Empty(t, r.AIError)
	assert.Equal(t, []models.AnalysisMethod{models.MethodDirectKoreanMatch}, rec.methods)
}

func TestAnalyze_AIEnhanced(t *testing.T) {
	a := newAnalyzer(stubClassifier{raw: neutralLeaning}, nil)

	r, err := a.Analyze(context.Background(), "그냥 평범한 하루야")

	require.NoError(t, err)
	assert.Equal(t, models.EmotionNeutral, r.Emotion)
	assert.Equal(t, 48, r.Confidence)
	assert.Equal(t, models.MethodAIEnhanced, r.Method)
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := newAnalyzer(stubClassifier{raw: neutralLeaning}, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := a.Analyze(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyText)
	}
}

func TestAnalyze_DegradedClassifier(t *testing.T) {
	rec := &countingRecorder{}
	a := newAnalyzer(stubClassifier{err: errors.New("model unavailable")}, rec)

	r, err := a.Analyze(context.Background(), "오늘 날씨")

	require.NoError(t, err)
	assert.Equal(t, models.EmotionNeutral, r.Emotion)
	assert.Equal(t, 50, r.Confidence)
	assert.Equal(t, models.MethodAIEnhanced, r.Method)
	assert.Contains(t, r.AIError, "model unavailable")
	assert.Equal(t, 1, rec.degraded)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	a := newAnalyzer(stubClassifier{raw: neutralLeaning}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, "행복해")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelfTest(t *testing.T) {
	a := newAnalyzer(stubClassifier{raw: neutralLeaning}, nil)

	results, err := a.SelfTest(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, []models.SelfTestResult{
		{Text: "내가 오늘 너무 행복해", Emotion: models.EmotionHappy, Confidence: 96},
		{Text: "정말 슬퍼서 눈물이 나", Emotion: models.EmotionSad, Confidence: 96},
		{Text: "완전 화가 나서 미치겠어", Emotion: models.EmotionAngry, Confidence: 96},
		{Text: "그냥 평범한 하루야", Emotion: models.EmotionNeutral, Confidence: 48},
		{Text: "깜짝 놀랐어!", Emotion: models.EmotionSurprised, Confidence: 80},
	}, results)
	for _, r := range results {
		assert.True(t, r.Emotion.Valid())
		assert.GreaterOrEqual(t, r.Confidence, 0)
		assert.LessOrEqual(t, r.Confidence, 100)
	}
}
