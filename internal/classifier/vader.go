package classifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/emotiflow/internal/models"
)

const VaderModelName = "vader-lexicon"

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// VaderClassifier scores text with the VADER lexicon. It needs no model
// download or ONNX runtime, which makes it the backend for local runs.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderClassifier) Name() string {
	return VaderModelName
}

// Classify reports VADER's positive/negative/neutral proportions normalised to sum to 1.
func (v *VaderClassifier) Classify(ctx context.Context, text string) (models.RawClassification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sentiment := v.analyzer.PolarityScores(ConvertMarkdownToText(text))

	pos, neg, neu := sentiment.Positive, sentiment.Negative, sentiment.Neutral
	total := pos + neg + neu
	if total <= 0 {
		neu, total = 1, 1
	}

	return models.RawClassification{
		{Label: "POSITIVE", Score: pos / total},
		{Label: "NEGATIVE", Score: neg / total},
		{Label: "NEUTRAL", Score: neu / total},
	}, nil
}

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and flattens the result to a single
// line of plain text without links.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := htmlTagPattern.ReplaceAllString(string(output), " ")
	plainText := strings.Join(strings.Fields(stripped), " ")

	return RemoveLinks(plainText)
}
