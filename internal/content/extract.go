// Package content harvests quizzable vocabulary from generated text.
//
// The generator is contractually required to wrap every word it used for
// vocabulary purposes in **bold** markers, so the markers in the text, not
// the list of words we asked for, are authoritative for what the reader
// actually saw.
package content

import (
	"regexp"
	"strings"
)

// boldMarker matches the generator's emphasis convention.
var boldMarker = regexp.MustCompile(`\*\*([^*]+?)\*\*`)

// trailingPunct is the punctuation stripped from extracted tokens.
const trailingPunct = ".,!?;:"

// ExtractVocabulary returns the ordered, deduplicated list of vocabulary
// words the text actually contains, given the words the generator was
// asked to feature.
//
// Tokens matching an intended word under a symmetric case-insensitive
// substring test (either contains the other) are emitted with the intended
// word's canonical spelling; this absorbs inflection mismatches such as an
// extracted "constellations" against an intended "constellation". Tokens
// outside the intended set are emitted verbatim. Multi-word tokens are
// dropped — they are almost always proper names and make poor quiz
// material. The result may be empty; callers fall back to the curated
// bank in that case.
func ExtractVocabulary(text string, intended []string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, m := range boldMarker.FindAllStringSubmatch(text, -1) {
		token := strings.TrimSpace(m[1])
		token = strings.TrimRight(token, trailingPunct)
		if len(token) <= 1 {
			continue
		}

		word := canonicalize(token, intended)

		if strings.ContainsAny(word, " \t\n") {
			continue
		}

		key := strings.ToLower(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, word)
	}

	return out
}

// canonicalize maps an extracted token back to the intended word it stands
// for, or returns the token itself when the generator bolded a word outside
// the requested set.
func canonicalize(token string, intended []string) string {
	lower := strings.ToLower(token)
	for _, want := range intended {
		wl := strings.ToLower(want)
		if wl == "" {
			continue
		}
		if strings.Contains(lower, wl) || strings.Contains(wl, lower) {
			return want
		}
	}
	return token
}
