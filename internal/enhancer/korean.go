// Package enhancer adjusts a model's emotion estimate with rules for short,
// emphatic Korean expressions that pretrained sentiment models tend to miss.
package enhancer

import (
	"math"
	"strings"

	"github.com/spacesedan/emotiflow/internal/models"
)

const (
	multiplierStep      = 0.2
	minMultiplier       = 0.5
	directMatchBaseline = 80
)

var intensifiers = []string{"너무", "정말", "진짜", "완전", "엄청", "매우", "아주", "굉장히", "정말로"}

// 그냥 is kept as a mitigator even though it reads more like "just".
var mitigators = []string{"약간", "조금", "살짝", "그냥", "조금은", "조금씩", "조금이라도"}

type emotionKeywords struct {
	emotion  models.EmotionLabel
	keywords []string
}

// Checked in order; the first keyword found wins.
var directKeywords = []emotionKeywords{
	{models.EmotionHappy, []string{"행복해", "기뻐", "좋아", "신나", "즐거워", "사랑해", "기쁘다", "즐겁다"}},
	{models.EmotionSad, []string{"슬퍼", "우울해", "힘들어", "아파", "외로워", "슬프다", "우울하다", "힘들다", "기분나빠", "기분나쁘다", "기분이 나빠", "기분이 나쁘다"}},
	{models.EmotionAngry, []string{"화나", "짜증나", "열받아", "빡쳐", "화나다", "짜증나다", "열받다", "빡치다", "화가나", "화가 나", "짜증내", "짜증 내"}},
	{models.EmotionSurprised, []string{"놀라", "깜짝", "충격", "놀랐어", "놀랐다", "깜짝놀라", "충격받아", "충격받다"}},
}

type Result struct {
	models.ScoredEmotion
	Method     models.AnalysisMethod
	Multiplier float64
	Keyword    string
}

// Multiplier adds a step per intensifier and removes one per mitigator found in
// text. Each listed word counts once. Only the lower bound is enforced.
func Multiplier(text string) float64 {
	m := 1.0
	for _, w := range intensifiers {
		if strings.Contains(text, w) {
			m += multiplierStep
		}
	}
	for _, w := range mitigators {
		if strings.Contains(text, w) {
			m -= multiplierStep
		}
	}
	return math.Max(m, minMultiplier)
}

// DirectMatch returns the first emotion keyword contained in text.
func DirectMatch(text string) (models.EmotionLabel, string, bool) {
	for _, group := range directKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.emotion, kw, true
			}
		}
	}
	return "", "", false
}

// Enhance applies the keyword override or, failing that, scales the model's
// confidence by the intensity multiplier.
func Enhance(text string, ai models.ScoredEmotion) Result {
	m := Multiplier(text)

	if emotion, kw, ok := DirectMatch(text); ok {
		return Result{
			ScoredEmotion: models.ScoredEmotion{Emotion: emotion, Confidence: scale(directMatchBaseline, m)},
			Method:        models.MethodDirectKoreanMatch,
			Multiplier:    m,
			Keyword:       kw,
		}
	}

	return Result{
		ScoredEmotion: models.ScoredEmotion{Emotion: ai.Emotion, Confidence: scale(ai.Confidence, m)},
		Method:        models.MethodAIEnhanced,
		Multiplier:    m,
	}
}

func scale(confidence int, m float64) int {
	return models.ClampConfidence(int(math.Round(float64(confidence) * m)))
}
