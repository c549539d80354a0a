// Package topic maps free-form messages from young readers to canonical
// topic tags used for story and fact generation.
package topic

import "strings"

// DefaultTopic is used when the message is empty.
const DefaultTopic = "adventure"

// rule pairs a canonical topic with the keywords that select it.
// Rules are evaluated in order; the first keyword hit wins, so broader
// topics must come after narrower ones.
type rule struct {
	topic    string
	keywords []string
}

// rules is the fixed topic table. Keywords match as case-insensitive
// substrings anywhere in the message.
var rules = []rule{
	{"space", []string{"space", "planet", "star", "rocket", "astronaut", "moon", "galaxy"}},
	{"dinosaurs", []string{"dinosaur", "dino", "t-rex", "trex", "fossil", "jurassic"}},
	{"ocean", []string{"ocean", "sea", "fish", "whale", "shark", "dolphin", "coral"}},
	{"animals", []string{"animal", "dog", "cat", "lion", "tiger", "elephant", "bird", "zoo"}},
	{"sports", []string{"sport", "soccer", "football", "basketball", "olympic", "race", "swim"}},
	{"magic", []string{"magic", "wizard", "dragon", "fairy", "unicorn", "castle", "knight"}},
	{"robots", []string{"robot", "machine", "computer", "invention"}},
	{"nature", []string{"forest", "tree", "flower", "mountain", "river", "volcano", "weather"}},
}

// Resolve maps a message to a canonical topic tag. If no keyword matches,
// the first whitespace-delimited token of the message is used so that any
// subject a child names can become a topic. An empty message resolves to
// DefaultTopic.
func Resolve(message string) string {
	lower := strings.ToLower(message)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.topic
			}
		}
	}

	fields := strings.Fields(strings.TrimSpace(lower))
	if len(fields) == 0 {
		return DefaultTopic
	}
	first := strings.Trim(fields[0], ".,!?\"'")
	if first == "" {
		return DefaultTopic
	}
	return first
}

// Known reports whether topic is one of the canonical topics in the table.
func Known(topic string) bool {
	for _, r := range rules {
		if r.topic == topic {
			return true
		}
	}
	return false
}

// Suggestions returns a fixed set of topics to offer after a vocabulary
// round or a completed fact loop.
func Suggestions() []string {
	return []string{"space", "animals", "ocean", "dinosaurs", "magic"}
}
