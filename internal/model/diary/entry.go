package diary

// Emotion names recognized by the analysis pipeline. The oracle is
// instructed to score exactly these four.
const (
	EmotionJoy     = "joy"
	EmotionSadness = "sadness"
	EmotionAnger   = "anger"
	EmotionFear    = "fear"
)

// EmotionKeys lists the fixed emotion vocabulary in canonical order.
var EmotionKeys = []string{EmotionJoy, EmotionSadness, EmotionAnger, EmotionFear}

// Sentiment labels the oracle may assign to an entry.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Entry is one immutable diary record with its derived sentiment
// metadata. created_at is an RFC 3339 string and the sole ordering key.
type Entry struct {
	ID             string             `json:"id"`
	Content        string             `json:"content"`
	SentimentScore float64            `json:"sentiment_score"`
	SentimentLabel string             `json:"sentiment_label"`
	Emotions       map[string]float64 `json:"emotions"`
	CreatedAt      string             `json:"created_at"`
}

// SentimentAnalysis is the per-entry result of one sentiment call.
// It is never persisted on its own; entries carry a copy taken at
// creation time.
type SentimentAnalysis struct {
	Score    float64            `json:"score"`
	Label    string             `json:"label"`
	Emotions map[string]float64 `json:"emotions"`
}

// JudgmentResult scores one entry on an ethical/utility scale.
// Computed on demand, never persisted.
type JudgmentResult struct {
	Benefit      float64 `json:"benefit"`
	Risk         float64 `json:"risk"`
	Morality     float64 `json:"morality"`
	Consequences string  `json:"consequences"`
	Verdict      string  `json:"verdict"`
}

// SabotageResult scores avoidance, rationalization and repetition
// patterns in one entry. Computed on demand, never persisted.
type SabotageResult struct {
	Procrastination float64 `json:"procrastination"`
	SelfDeception   float64 `json:"self_deception"`
	Loops           float64 `json:"loops"`
	Summary         string  `json:"summary"`
}

// JudgedEntry is one judge-all result row; the judgment fields are
// flattened into the entry identity.
type JudgedEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
	JudgmentResult
}

// SabotageEntry is one sabotage-all result row.
type SabotageEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
	SabotageResult
}

// EntryDetail pairs an entry with its freshly re-derived analysis and
// commentary for the detailed forecast response.
type EntryDetail struct {
	ID       string             `json:"id"`
	Date     string             `json:"date"`
	Content  string             `json:"content"`
	Score    float64            `json:"score"`
	Label    string             `json:"label"`
	Emotions map[string]float64 `json:"emotions"`
	Comment  string             `json:"comment"`
}

// AggregateForecast summarizes sentiment across the whole history.
type AggregateForecast struct {
	OverallSentiment string             `json:"overallSentiment"`
	AvgEmotions      map[string]float64 `json:"avgEmotions"`
	Advice           string             `json:"advice"`
	DetailedResults  []EntryDetail      `json:"detailedResults"`
}
