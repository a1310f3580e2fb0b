package classifier

import (
	"strings"

	"github.com/spacesedan/emotiflow/internal/models"
)

// ModelDirName is the directory a hub model id is stored under inside the
// model directory ("owner/name" becomes "owner_name").
func ModelDirName(modelID string) string {
	return strings.ReplaceAll(modelID, "/", "_")
}

// FirstBatch converts the scores of the first input in a batched model output.
// A missing or empty first batch is ErrNoScores.
func FirstBatch[T any](batches [][]T, convert func(T) models.RawScore) (models.RawClassification, error) {
	if len(batches) == 0 || len(batches[0]) == 0 {
		return nil, ErrNoScores
	}

	raw := make(models.RawClassification, 0, len(batches[0]))
	for _, entry := range batches[0] {
		raw = append(raw, convert(entry))
	}
	return raw, nil
}
