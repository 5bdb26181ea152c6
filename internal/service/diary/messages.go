package diary

// User-facing fixed strings, collected in one place so a localized
// build only has to swap this file.
const (
	// CommentFallback replaces a comment the oracle failed to produce.
	CommentFallback = "The psychologist has no comment right now. Please try again later."

	// ForecastFallback replaces a forecast the oracle failed to produce.
	ForecastFallback = "The forecast is unavailable right now. Please try again later."

	// NoEntriesMessage is returned by history-wide operations when the
	// diary is still empty.
	NoEntriesMessage = "There are no diary entries yet. Write something first."

	advicePositive = "Your diary leans positive. Keep the habits that got you here and note what fuels the good days."
	adviceNegative = "Your diary leans negative lately. Be gentle with yourself and consider talking to someone you trust."
)

func adviceFor(overallSentiment string) string {
	if overallSentiment == "negative" {
		return adviceNegative
	}
	return advicePositive
}
