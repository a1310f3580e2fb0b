package classifier

import (
	"context"
	"testing"

	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(raw models.RawClassification) float64 {
	var total float64
	for _, r := range raw {
		total += r.Score
	}
	return total
}

func top(raw models.RawClassification) models.RawScore {
	best := raw[0]
	for _, r := range raw[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best
}

func TestVaderClassifier_Positive(t *testing.T) {
	v := NewVaderClassifier()

	raw, err := v.Classify(context.Background(), "I love this, it is great and wonderful!")

	require.NoError(t, err)
	require.Len(t, raw, 3)
	assert.InDelta(t, 1.0, sum(raw), 1e-9)
	assert.Equal(t, "POSITIVE", top(raw).Label)
}

func TestVaderClassifier_Negative(t *testing.T) {
	v := NewVaderClassifier()

	raw, err := v.Classify(context.Background(), "This is terrible, I hate it.")

	require.NoError(t, err)
	assert.InDelta(t, 1.0, sum(raw), 1e-9)
	assert.Equal(t, "NEGATIVE", top(raw).Label)
}

func TestVaderClassifier_UnknownWordsAreNeutral(t *testing.T) {
	v := NewVaderClassifier()

	raw, err := v.Classify(context.Background(), "그냥 평범한 하루야")

	require.NoError(t, err)
	assert.InDelta(t, 1.0, sum(raw), 1e-9)
	assert.Equal(t, "NEUTRAL", top(raw).Label)
}

func TestVaderClassifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVaderClassifier().Classify(ctx, "hello")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertMarkdownToText(t *testing.T) {
	out := ConvertMarkdownToText("**so happy** with [this](https://example.com/a) see https://example.com/b")

	assert.Contains(t, out, "so happy")
	assert.Contains(t, out, "this")
	assert.NotContains(t, out, "<strong>")
	assert.NotContains(t, out, "https://")
}
