package insight

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/apetrov/diarium/backend/internal/model/diary"
)

// ErrMalformedOutput indicates the oracle returned something that does
// not decode into the requested schema. Callers treat it the same as a
// transport failure but tests can tell the two apart.
var ErrMalformedOutput = errors.New("malformed oracle output")

type sentimentPayload struct {
	Score    *float64           `json:"score"`
	Label    string             `json:"label"`
	Emotions map[string]float64 `json:"emotions"`
}

// ParseSentiment decodes a sentiment object from a raw oracle
// response. The label must be one of the known three and the score is
// clamped into [-1, 1]; absent emotion keys default to zero so the
// aggregator never sees a partial vector.
func ParseSentiment(raw string) (diary.SentimentAnalysis, error) {
	extracted, err := ExtractJSON(raw)
	if err != nil {
		return diary.SentimentAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	var payload sentimentPayload
	if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
		return diary.SentimentAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	label, ok := parseSentimentLabel(payload.Label)
	if !ok {
		return diary.SentimentAnalysis{}, fmt.Errorf("%w: unknown label %q", ErrMalformedOutput, payload.Label)
	}
	if payload.Score == nil {
		return diary.SentimentAnalysis{}, fmt.Errorf("%w: missing score", ErrMalformedOutput)
	}

	emotions := make(map[string]float64, len(diary.EmotionKeys))
	for _, key := range diary.EmotionKeys {
		value := payload.Emotions[key]
		if value < 0 {
			value = 0
		}
		emotions[key] = value
	}

	return diary.SentimentAnalysis{
		Score:    clampScore(*payload.Score),
		Label:    label,
		Emotions: emotions,
	}, nil
}

type judgmentPayload struct {
	Benefit      *float64 `json:"benefit"`
	Risk         *float64 `json:"risk"`
	Morality     *float64 `json:"morality"`
	Consequences string   `json:"consequences"`
	Verdict      string   `json:"verdict"`
}

// ParseJudgment decodes a judgment object from a raw oracle response.
func ParseJudgment(raw string) (diary.JudgmentResult, error) {
	extracted, err := ExtractJSON(raw)
	if err != nil {
		return diary.JudgmentResult{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	var payload judgmentPayload
	if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
		return diary.JudgmentResult{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if payload.Benefit == nil || payload.Risk == nil || payload.Morality == nil {
		return diary.JudgmentResult{}, fmt.Errorf("%w: missing numeric judgment fields", ErrMalformedOutput)
	}

	return diary.JudgmentResult{
		Benefit:      *payload.Benefit,
		Risk:         *payload.Risk,
		Morality:     *payload.Morality,
		Consequences: strings.TrimSpace(payload.Consequences),
		Verdict:      strings.TrimSpace(payload.Verdict),
	}, nil
}

type sabotagePayload struct {
	Procrastination *float64 `json:"procrastination"`
	SelfDeception   *float64 `json:"self_deception"`
	Loops           *float64 `json:"loops"`
	Summary         string   `json:"summary"`
}

// ParseSabotage decodes a sabotage object from a raw oracle response.
func ParseSabotage(raw string) (diary.SabotageResult, error) {
	extracted, err := ExtractJSON(raw)
	if err != nil {
		return diary.SabotageResult{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	var payload sabotagePayload
	if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
		return diary.SabotageResult{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if payload.Procrastination == nil || payload.SelfDeception == nil || payload.Loops == nil {
		return diary.SabotageResult{}, fmt.Errorf("%w: missing numeric sabotage fields", ErrMalformedOutput)
	}

	return diary.SabotageResult{
		Procrastination: *payload.Procrastination,
		SelfDeception:   *payload.SelfDeception,
		Loops:           *payload.Loops,
		Summary:         strings.TrimSpace(payload.Summary),
	}, nil
}

func parseSentimentLabel(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case diary.SentimentPositive:
		return diary.SentimentPositive, true
	case diary.SentimentNeutral:
		return diary.SentimentNeutral, true
	case diary.SentimentNegative:
		return diary.SentimentNegative, true
	default:
		return "", false
	}
}

func clampScore(val float64) float64 {
	if val < -1 {
		return -1
	}
	if val > 1 {
		return 1
	}
	return val
}
