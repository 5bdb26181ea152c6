package insight

import (
	"errors"
	"testing"

	"github.com/apetrov/diarium/backend/internal/model/diary"
)

func TestParseSentimentFencedResponse(t *testing.T) {
	raw := "```json\n{\"score\":0.6,\"label\":\"positive\",\"emotions\":{\"joy\":0.8,\"sadness\":0.1,\"anger\":0,\"fear\":0.05}}\n```"

	analysis, err := ParseSentiment(raw)
	if err != nil {
		t.Fatalf("ParseSentiment err: %v", err)
	}
	if analysis.Label != diary.SentimentPositive {
		t.Fatalf("unexpected label: %s", analysis.Label)
	}
	if analysis.Score != 0.6 {
		t.Fatalf("unexpected score: %f", analysis.Score)
	}
	if analysis.Emotions[diary.EmotionJoy] != 0.8 {
		t.Fatalf("unexpected joy: %f", analysis.Emotions[diary.EmotionJoy])
	}
}

func TestParseSentimentMissingEmotionKeysDefaultToZero(t *testing.T) {
	analysis, err := ParseSentiment(`{"score":-0.2,"label":"negative","emotions":{"sadness":0.7}}`)
	if err != nil {
		t.Fatalf("ParseSentiment err: %v", err)
	}
	for _, key := range diary.EmotionKeys {
		if _, ok := analysis.Emotions[key]; !ok {
			t.Fatalf("emotion key %s missing from result", key)
		}
	}
	if analysis.Emotions[diary.EmotionJoy] != 0 {
		t.Fatalf("expected absent joy to default to 0, got %f", analysis.Emotions[diary.EmotionJoy])
	}
}

func TestParseSentimentClampsScore(t *testing.T) {
	analysis, err := ParseSentiment(`{"score":3.5,"label":"positive","emotions":{}}`)
	if err != nil {
		t.Fatalf("ParseSentiment err: %v", err)
	}
	if analysis.Score != 1 {
		t.Fatalf("expected score clamped to 1, got %f", analysis.Score)
	}
}

func TestParseSentimentRejectsUnknownLabel(t *testing.T) {
	if _, err := ParseSentiment(`{"score":0,"label":"ecstatic","emotions":{}}`); !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestParseSentimentMissingScore(t *testing.T) {
	if _, err := ParseSentiment(`{"label":"neutral","emotions":{}}`); !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestParseJudgmentWithSurroundingProse(t *testing.T) {
	raw := "Here is my assessment: {\"benefit\":7,\"risk\":2,\"morality\":8,\"consequences\":\"steady growth\",\"verdict\":\"worthwhile\"}"

	result, err := ParseJudgment(raw)
	if err != nil {
		t.Fatalf("ParseJudgment err: %v", err)
	}
	if result.Benefit != 7 || result.Risk != 2 || result.Morality != 8 {
		t.Fatalf("unexpected scores: %+v", result)
	}
	if result.Verdict != "worthwhile" {
		t.Fatalf("unexpected verdict: %q", result.Verdict)
	}
}

func TestParseJudgmentMissingFields(t *testing.T) {
	if _, err := ParseJudgment(`{"benefit":7,"verdict":"fine"}`); !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestParseSabotage(t *testing.T) {
	raw := `{"procrastination":6,"self_deception":3,"loops":4,"summary":"keeps postponing the same task"}`

	result, err := ParseSabotage(raw)
	if err != nil {
		t.Fatalf("ParseSabotage err: %v", err)
	}
	if result.Procrastination != 6 || result.SelfDeception != 3 || result.Loops != 4 {
		t.Fatalf("unexpected scores: %+v", result)
	}
	if result.Summary == "" {
		t.Fatal("expected non-empty summary")
	}
}

func TestParseSabotageMalformedJSON(t *testing.T) {
	if _, err := ParseSabotage(`{"procrastination": broken`); !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}
