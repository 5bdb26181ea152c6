package insight

import (
	"math"

	"github.com/apetrov/diarium/backend/internal/model/diary"
)

// Summary condenses a sequence of per-entry analyses.
type Summary struct {
	OverallSentiment string
	AvgEmotions      map[string]float64
}

// Aggregate computes the mean emotion vector and the majority
// sentiment over an ordered sequence of analyses. Callers special-case
// the empty sequence before invoking it.
//
// The overall label is positive whenever positives are at least as
// many as negatives, negative otherwise. Neutral entries count toward
// the total but can never win; a history of only neutral entries
// therefore resolves to positive (0 >= 0). That bias is long-standing
// observed behavior and is pinned by tests.
func Aggregate(analyses []diary.SentimentAnalysis) Summary {
	avg := make(map[string]float64, len(diary.EmotionKeys))
	for _, key := range diary.EmotionKeys {
		var sum float64
		for _, a := range analyses {
			sum += a.Emotions[key]
		}
		avg[key] = round2(sum / float64(len(analyses)))
	}

	var positives, negatives int
	for _, a := range analyses {
		switch a.Label {
		case diary.SentimentPositive:
			positives++
		case diary.SentimentNegative:
			negatives++
		}
	}

	overall := diary.SentimentNegative
	if positives >= negatives {
		overall = diary.SentimentPositive
	}

	return Summary{OverallSentiment: overall, AvgEmotions: avg}
}

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}
