// Package classifier wraps the text-classification backends that produce raw
// label/score pairs for a piece of text. Backends are built once at startup
// and shared read-only by every request.
package classifier

import (
	"context"
	"errors"

	"github.com/spacesedan/emotiflow/internal/models"
)

const (
	DefaultPrimaryModel  = "hun3359/klue-bert-base-sentiment"
	DefaultFallbackModel = "cardiffnlp/twitter-xlm-roberta-base-sentiment"
)

var (
	ErrNoScores  = errors.New("classifier returned no scores")
	ErrModelLoad = errors.New("no classification model could be loaded")
)

type Classifier interface {
	// Classify returns a score in [0,1] for every label the backend supports.
	Classify(ctx context.Context, text string) (models.RawClassification, error)
	Name() string
}
