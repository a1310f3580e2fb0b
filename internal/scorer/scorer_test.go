package scorer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spacesedan/emotiflow/internal/classifier"
	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	raw models.RawClassification
	err error
}

func (f *fakeClassifier) Name() string { return "fake" }

func (f *fakeClassifier) Classify(_ context.Context, _ string) (models.RawClassification, error) {
	return f.raw, f.err
}

type recordingObserver struct {
	calls int
	err   error
}

func (r *recordingObserver) ObserveInference(_ string, _ time.Duration, err error) {
	r.calls++
	r.err = err
}

func TestMapLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want models.EmotionLabel
	}{
		{"POSITIVE", models.EmotionHappy},
		{"NEGATIVE", models.EmotionSad},
		{"NEUTRAL", models.EmotionNeutral},
		{"LABEL_0", models.EmotionSad},
		{"LABEL_1", models.EmotionNeutral},
		{"LABEL_2", models.EmotionHappy},
		{"positive", models.EmotionHappy},
		{"negative", models.EmotionSad},
		{"joy", models.EmotionLabel("joy")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, MapLabel(tt.raw))
		})
	}
}

func TestScore_PicksMaxAndRanks(t *testing.T) {
	obs := &recordingObserver{}
	s := New(&fakeClassifier{raw: models.RawClassification{
		{Label: "LABEL_0", Score: 0.104},
		{Label: "LABEL_1", Score: 0.2},
		{Label: "LABEL_2", Score: 0.696},
	}}, obs)

	out := s.Score(context.Background(), "좋은 하루")

	assert.False(t, out.Degraded())
	assert.Equal(t, models.EmotionHappy, out.Emotion)
	assert.Equal(t, 70, out.Confidence)
	assert.Equal(t, []models.LabelScore{
		{Emotion: models.EmotionHappy, Score: 70},
		{Emotion: models.EmotionNeutral, Score: 20},
		{Emotion: models.EmotionSad, Score: 10},
	}, out.Scores)
	assert.Equal(t, 1, obs.calls)
	assert.NoError(t, obs.err)
}

func TestScore_DegradesOnError(t *testing.T) {
	obs := &recordingObserver{}
	s := New(&fakeClassifier{err: errors.New("onnx exploded")}, obs)

	out := s.Score(context.Background(), "아무거나")

	require.True(t, out.Degraded())
	assert.Equal(t, models.EmotionNeutral, out.Emotion)
	assert.Equal(t, 50, out.Confidence)
	assert.Empty(t, out.Scores)
	assert.NotNil(t, out.Scores)
	assert.Contains(t, out.Cause.Error(), "onnx exploded")
	assert.Error(t, obs.err)
}

func TestScore_EmptyScoresDegrade(t *testing.T) {
	s := New(&fakeClassifier{raw: models.RawClassification{}}, nil)

	out := s.Score(context.Background(), "텍스트")

	require.True(t, out.Degraded())
	assert.ErrorIs(t, out.Cause, classifier.ErrNoScores)
}

func TestScore_ConfidenceIsClamped(t *testing.T) {
	s := New(&fakeClassifier{raw: models.RawClassification{
		{Label: "POSITIVE", Score: 1.2},
	}}, nil)

	out := s.Score(context.Background(), "텍스트")

	assert.Equal(t, 100, out.Confidence)
}
