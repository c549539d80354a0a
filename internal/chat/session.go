// Package chat implements the conversation engine: the per-turn phase
// state machine for story and facts modes, and the vocabulary quizzing
// that grounds every question in text the reader just saw.
package chat

import "strings"

// Mode selects which conversation loop a turn runs through.
type Mode string

const (
	ModeStory Mode = "story"
	ModeFacts Mode = "facts"
)

// DefaultMaxQuestions is the vocabulary question cap per phase.
const DefaultMaxQuestions = 3

// VocabularyPhase tracks quiz progress within one vocabulary round.
// QuestionsAsked never exceeds MaxQuestions; every writer checks the cap.
type VocabularyPhase struct {
	IsActive       bool `json:"isActive"`
	QuestionsAsked int  `json:"questionsAsked"`
	MaxQuestions   int  `json:"maxQuestions"`
	IsComplete     bool `json:"isComplete"`
}

// SessionData is the complete conversation state. It is round-tripped
// through the client on every turn and never persisted server-side: the
// controller mutates a working copy for exactly one turn and hands it
// back.
type SessionData struct {
	// SessionID correlates turns of one session in logs. Minted on the
	// first turn, carried by the client afterwards.
	SessionID string `json:"sessionId,omitempty"`

	// Topic is the canonical topic of the current story or fact arc.
	// Set once per arc, cleared only on reset.
	Topic string `json:"topic,omitempty"`

	// StoryParts is the interleaved sequence of bot and user story turns,
	// append-only within one story.
	StoryParts []string `json:"storyParts,omitempty"`

	// CurrentStep is the story-mode progress counter.
	CurrentStep int `json:"currentStep"`

	// IsComplete is true once the story reached its narrative end.
	IsComplete bool `json:"isComplete"`

	// Facts-mode progress.
	FactsShown  int      `json:"factsShown"`
	CurrentFact string   `json:"currentFact,omitempty"`
	AllFacts    []string `json:"allFacts,omitempty"`

	// AskedVocabWords lists words already quizzed, in order, with no
	// case-insensitive duplicates.
	AskedVocabWords []string `json:"askedVocabWords,omitempty"`

	// AwaitingStoryConfirmation is true only between vocabulary-phase
	// completion and the next topic decision.
	AwaitingStoryConfirmation bool `json:"awaiting_story_confirmation"`

	VocabularyPhase VocabularyPhase `json:"vocabularyPhase"`

	// ContentVocabulary lists the words the generator was asked to
	// feature in the current content unit. Reset on every topic change.
	ContentVocabulary []string `json:"contentVocabulary,omitempty"`
}

// NewSessionData returns a fresh session.
func NewSessionData() *SessionData {
	return &SessionData{
		VocabularyPhase: VocabularyPhase{MaxQuestions: DefaultMaxQuestions},
	}
}

// Clone deep-copies the session so a failed turn never touches the
// caller's state.
func (s *SessionData) Clone() *SessionData {
	c := *s
	c.StoryParts = append([]string(nil), s.StoryParts...)
	c.AllFacts = append([]string(nil), s.AllFacts...)
	c.AskedVocabWords = append([]string(nil), s.AskedVocabWords...)
	c.ContentVocabulary = append([]string(nil), s.ContentVocabulary...)
	return &c
}

// Normalize repairs fields a client may omit, zero out, or inflate. The
// quiz counter is clamped to the cap so the engine never hands back state
// where questionsAsked exceeds maxQuestions, no matter what arrived.
func (s *SessionData) Normalize() {
	if s.VocabularyPhase.MaxQuestions <= 0 {
		s.VocabularyPhase.MaxQuestions = DefaultMaxQuestions
	}
	if s.VocabularyPhase.QuestionsAsked > s.VocabularyPhase.MaxQuestions {
		s.VocabularyPhase.QuestionsAsked = s.VocabularyPhase.MaxQuestions
	}
}

// AddAskedWord appends a quizzed word, enforcing the no-duplicates
// invariant case-insensitively. Reports whether the word was added.
func (s *SessionData) AddAskedWord(word string) bool {
	if s.WasAsked(word) {
		return false
	}
	s.AskedVocabWords = append(s.AskedVocabWords, word)
	return true
}

// WasAsked reports whether word has already been quizzed this session.
func (s *SessionData) WasAsked(word string) bool {
	for _, w := range s.AskedVocabWords {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

// StoryText returns the accumulated story as one blob, the input for
// content-derived vocabulary extraction and sentence location.
func (s *SessionData) StoryText() string {
	return strings.Join(s.StoryParts, " ")
}

// ResetForTopic clears everything tied to the previous arc and starts a
// new one with the given topic. SessionID survives.
func (s *SessionData) ResetForTopic(newTopic string) {
	s.Topic = newTopic
	s.StoryParts = nil
	s.CurrentStep = 2
	s.IsComplete = false
	s.FactsShown = 0
	s.CurrentFact = ""
	s.AllFacts = nil
	s.AskedVocabWords = nil
	s.AwaitingStoryConfirmation = false
	s.VocabularyPhase = VocabularyPhase{MaxQuestions: DefaultMaxQuestions}
	s.ContentVocabulary = nil
}
