// Package vocab holds the curated vocabulary bank: word/definition entries
// with coarse difficulty tiers, loaded once at startup and read-only after.
package vocab

import (
	"math/rand/v2"
	"strings"
)

// Difficulty tiers. Tier 1 is reserved for advanced learners and is never
// sampled by Select; tiers 2 and 3 are grade-appropriate and challenge
// words respectively.
const (
	DifficultyReserved  = 1
	DifficultyGrade     = 2
	DifficultyChallenge = 3
)

// Entry is one curated vocabulary word.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Difficulty int    `json:"difficulty"`
	Topic      string `json:"topic,omitempty"` // empty for general-purpose entries
}

// DefaultRatios is the sampling ratio per difficulty tier used by Select.
var DefaultRatios = map[int]float64{
	DifficultyGrade:     0.5,
	DifficultyChallenge: 0.5,
}

// Bank is the in-memory read-only word store. Concurrent reads are safe:
// nothing mutates a Bank after construction.
type Bank struct {
	general []Entry
	byTopic map[string][]Entry
	rng     *rand.Rand
}

// NewBank builds a Bank from loaded entries. Entries with a topic are
// indexed under it; the rest form the general pool.
func NewBank(entries []Entry) *Bank {
	b := &Bank{byTopic: make(map[string][]Entry)}
	for _, e := range entries {
		if e.Difficulty == DifficultyReserved {
			// Reserved tier: stored, never quizzed.
			continue
		}
		if e.Topic == "" {
			b.general = append(b.general, e)
		} else {
			b.byTopic[strings.ToLower(e.Topic)] = append(b.byTopic[strings.ToLower(e.Topic)], e)
		}
	}
	return b
}

// WithRand returns a copy of the bank using the given source, for
// deterministic tests.
func (b *Bank) WithRand(rng *rand.Rand) *Bank {
	c := *b
	c.rng = rng
	return &c
}

// Size returns the total number of entries in the bank.
func (b *Bank) Size() int {
	n := len(b.general)
	for _, es := range b.byTopic {
		n += len(es)
	}
	return n
}

// Lookup returns the entry for word (case-insensitive), searching topic
// entries first, then the general pool.
func (b *Bank) Lookup(word string) (Entry, bool) {
	for _, es := range b.byTopic {
		for _, e := range es {
			if strings.EqualFold(e.Word, word) {
				return e, true
			}
		}
	}
	for _, e := range b.general {
		if strings.EqualFold(e.Word, word) {
			return e, true
		}
	}
	return Entry{}, false
}

// Select picks one entry for the given topic, avoiding words in used,
// with a difficulty balance given by ratios (DefaultRatios when nil).
//
// The pool is the topic-specific entries plus the general entries. Words
// already used are filtered out case-insensitively; if that empties the
// pool the filter is dropped rather than failing, so a long session can
// repeat words instead of starving. Within the filtered pool, each
// difficulty tier contributes up to floor(count*ratio) sampled entries;
// if the tiered sample truncates to nothing (small pools), the whole
// filtered pool is used. Returns nil only when the unfiltered pool was
// empty to begin with.
func (b *Bank) Select(topic string, used []string, ratios map[int]float64) *Entry {
	if ratios == nil {
		ratios = DefaultRatios
	}

	pool := append([]Entry{}, b.byTopic[strings.ToLower(topic)]...)
	pool = append(pool, b.general...)
	if len(pool) == 0 {
		return nil
	}

	usedSet := make(map[string]bool, len(used))
	for _, w := range used {
		usedSet[strings.ToLower(w)] = true
	}

	filtered := pool[:0:0]
	for _, e := range pool {
		if !usedSet[strings.ToLower(e.Word)] {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		// Every word has been asked already; reset rather than starve.
		filtered = pool
	}

	byLevel := make(map[int][]Entry)
	for _, e := range filtered {
		byLevel[e.Difficulty] = append(byLevel[e.Difficulty], e)
	}

	var candidates []Entry
	for level, ratio := range ratios {
		entries := byLevel[level]
		n := int(float64(len(entries)) * ratio)
		candidates = append(candidates, b.sample(entries, n)...)
	}
	if len(candidates) == 0 {
		candidates = filtered
	}

	e := candidates[b.intN(len(candidates))]
	return &e
}

// sample draws up to n entries without replacement.
func (b *Bank) sample(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	idx := b.perm(len(entries))
	out := make([]Entry, 0, n)
	for _, i := range idx[:n] {
		out = append(out, entries[i])
	}
	return out
}

func (b *Bank) intN(n int) int {
	if b.rng != nil {
		return b.rng.IntN(n)
	}
	return rand.IntN(n)
}

func (b *Bank) perm(n int) []int {
	if b.rng != nil {
		return b.rng.Perm(n)
	}
	return rand.Perm(n)
}
