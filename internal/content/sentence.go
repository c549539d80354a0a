package content

import (
	"regexp"
	"strings"
)

// sentencePattern splits text into sentences, keeping the terminal
// punctuation attached to its sentence.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)

// FindSentence returns the first sentence of text whose bold-marked
// occurrence of word matches case-insensitively. Trailing punctuation
// inside the marker is tolerated, so **Olympics,** still matches the word
// "olympics". Returns ("", false) when no sentence contains the marked
// word; callers fall back to the full text blob rather than fail.
func FindSentence(word, text string) (string, bool) {
	if strings.TrimSpace(word) == "" {
		return "", false
	}

	// Inflected forms (a trailing suffix on the marked word) are accepted,
	// matching the extractor's symmetric-substring tolerance.
	marked := regexp.MustCompile(`(?i)\*\*\s*` + regexp.QuoteMeta(word) + `[a-z]*[.,!?;:\s]*\*\*`)

	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		if marked.MatchString(sentence) {
			return strings.TrimSpace(sentence), true
		}
	}
	return "", false
}
