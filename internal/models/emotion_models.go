package models

import "fmt"

type EmotionLabel string

const (
	EmotionHappy     EmotionLabel = "happy"
	EmotionSad       EmotionLabel = "sad"
	EmotionAngry     EmotionLabel = "angry"
	EmotionSurprised EmotionLabel = "surprised"
	EmotionNeutral   EmotionLabel = "neutral"
)

// Emotions is the closed vocabulary every analysis result is drawn from.
var Emotions = []EmotionLabel{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionSurprised,
	EmotionNeutral,
}

func (e EmotionLabel) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

type AnalysisMethod string

const (
	MethodDirectKoreanMatch AnalysisMethod = "direct_korean_match"
	MethodAIEnhanced        AnalysisMethod = "ai_enhanced"
)

// ScoredEmotion carries a confidence in [0,100].
type ScoredEmotion struct {
	Emotion    EmotionLabel `json:"emotion"`
	Confidence int          `json:"confidence"`
}

// ClampConfidence bounds a confidence to [0,100].
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// RawScore is one unmodified label/score pair from a classifier, score in [0,1].
type RawScore struct {
	Label string
	Score float64
}

type RawClassification []RawScore

// LabelScore is a relabeled RawScore with the score scaled to 0-100.
type LabelScore struct {
	Emotion EmotionLabel `json:"emotion"`
	Score   int          `json:"score"`
}

type AnalysisResult struct {
	InputText string
	ScoredEmotion
	Method    AnalysisMethod
	RawScores []LabelScore
	AIError   string
}

func (r AnalysisResult) Message() string {
	return fmt.Sprintf("%s %d%%", r.Emotion, r.Confidence)
}
