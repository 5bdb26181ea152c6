package insight

import (
	"errors"
	"strings"
)

// ErrNoJSON indicates the oracle response contains no JSON object at
// all, not even a malformed one.
var ErrNoJSON = errors.New("no json object in oracle response")

// Clean strips surrounding whitespace and removes code-fence markers
// the oracle habitually wraps its output in. Fences are removed
// wherever they appear, not only at the edges.
func Clean(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ExtractJSON cleans the raw response and returns the substring from
// the first '{' to the last '}' inclusive. The scan tolerates prose
// before or after the object; it cannot recover when the surrounding
// prose contains its own unmatched braces.
func ExtractJSON(raw string) (string, error) {
	cleaned := Clean(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return "", ErrNoJSON
	}
	return cleaned[start : end+1], nil
}
