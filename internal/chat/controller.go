package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wordspark/wordspark/internal/content"
	"github.com/wordspark/wordspark/internal/llm"
	"github.com/wordspark/wordspark/internal/topic"
	"github.com/wordspark/wordspark/internal/vocab"
)

// Scripted responses. Every failure path degrades to one of these instead
// of surfacing an error to the child.
const (
	apologyResponse = "Oops! My storytelling hat slipped off for a moment. Could you try that again?"
	goodbyeResponse = "Thank you for reading with me today! You did wonderful work. See you next time!"
	theEndResponse  = "And that's the end of our story! Send start_vocabulary when you're ready to look at some of the words we used."
	unknownModeHint = "I can tell stories or share fun facts! Pick \"story\" or \"facts\" mode and tell me a topic you love."
	ambiguousReply  = "I didn't catch that! Would you like another story? You can say yes or no."
)

// Controller owns the per-turn phase state machine. It is stateless
// across calls: all session state arrives in the request and leaves in
// the response, so one Controller serves any number of sessions
// concurrently.
type Controller struct {
	provider llm.Provider
	bank     *vocab.Bank
	cfg      Config
	logger   *slog.Logger
}

// New creates a Controller.
func New(provider llm.Provider, bank *vocab.Bank, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{provider: provider, bank: bank, cfg: cfg, logger: logger}
}

// HandleTurn processes one conversation turn. It never returns an error:
// any failure while producing content yields the static apology with the
// caller's session data returned untouched, so a retry with the same
// state is always safe.
func (c *Controller) HandleTurn(ctx context.Context, req TurnRequest) (resp *TurnResponse) {
	// The working copy. The caller's SessionData is committed to only by
	// returning the mutated copy on success.
	session := NewSessionData()
	if req.SessionData != nil {
		session = req.SessionData.Clone()
	}
	session.Normalize()
	if session.SessionID == "" {
		session.SessionID = uuid.NewString()
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("turn panicked", "session_id", session.SessionID, "panic", fmt.Sprint(r))
			resp = c.failedTurn(req)
		}
	}()

	var (
		out *TurnResponse
		err error
	)
	switch req.Mode {
	case ModeStory:
		out, err = c.storyTurn(ctx, session, req.Message)
	case ModeFacts:
		out, err = c.factsTurn(ctx, session, req.Message)
	default:
		// Unknown mode: guidance only, no state mutation.
		return &TurnResponse{
			Response:    unknownModeHint,
			SessionData: originalSession(req),
		}
	}

	if err != nil {
		c.logger.Warn("turn failed", "session_id", session.SessionID, "mode", string(req.Mode), "error", err)
		return c.failedTurn(req)
	}
	return out
}

// failedTurn builds the apology response, preserving exactly the state
// the caller sent.
func (c *Controller) failedTurn(req TurnRequest) *TurnResponse {
	return &TurnResponse{
		Response:    apologyResponse,
		SessionData: originalSession(req),
	}
}

func originalSession(req TurnRequest) *SessionData {
	if req.SessionData != nil {
		return req.SessionData
	}
	return NewSessionData()
}

// storyTurn runs one turn of the story-mode state machine.
func (c *Controller) storyTurn(ctx context.Context, s *SessionData, message string) (*TurnResponse, error) {
	// Control tokens outrank every content interpretation.
	switch ParseCommand(message) {
	case CmdStartVocabulary, CmdNextVocabulary:
		if s.VocabularyPhase.IsComplete {
			// The phase is closed; repeat the offer instead of reopening.
			return c.finishVocabulary(s), nil
		}
		return c.vocabularyQuestion(ctx, s)
	case CmdFinishVocabulary:
		return c.finishVocabulary(s), nil
	}

	switch {
	case s.AwaitingStoryConfirmation:
		return c.confirmationTurn(ctx, s, message)
	case s.Topic == "":
		return c.openStory(ctx, s, message)
	case s.IsComplete:
		return c.completedStoryTurn(ctx, s, message)
	default:
		return c.continueStory(ctx, s, message)
	}
}

// openStory resolves the topic and generates the opening beat.
func (c *Controller) openStory(ctx context.Context, s *SessionData, message string) (*TurnResponse, error) {
	s.ResetForTopic(topic.Resolve(message))

	words := c.pickIntendedWords(s)
	opening, err := c.generateStory(ctx, buildOpeningPrompt(s.Topic, words))
	if err != nil {
		return nil, fmt.Errorf("opening for %q: %w", s.Topic, err)
	}

	s.StoryParts = append(s.StoryParts, opening)
	s.ContentVocabulary = append(s.ContentVocabulary, words...)

	return &TurnResponse{Response: opening, SessionData: s}, nil
}

// continueStory appends the child's contribution and either continues or
// ends the story. An ending turn carries no vocabulary question: quizzing
// waits for the explicit start_vocabulary trigger.
func (c *Controller) continueStory(ctx context.Context, s *SessionData, message string) (*TurnResponse, error) {
	s.StoryParts = append(s.StoryParts, message)

	// Writing feedback is best-effort; a miss costs one encouragement
	// line, never the turn.
	feedback := c.writingFeedback(ctx, message)

	totalChars := 0
	for _, p := range s.StoryParts {
		totalChars += len(p)
	}
	shouldEnd := (s.CurrentStep >= c.cfg.MinStepsToEnd && totalChars > c.cfg.MinStoryChars) ||
		s.CurrentStep >= c.cfg.MaxSteps

	words := c.pickIntendedWords(s)

	if shouldEnd {
		closing, err := c.generateStory(ctx, buildClosingPrompt(s.StoryParts, words))
		if err != nil {
			return nil, fmt.Errorf("closing: %w", err)
		}
		s.StoryParts = append(s.StoryParts, closing)
		s.ContentVocabulary = append(s.ContentVocabulary, words...)
		s.IsComplete = true

		return &TurnResponse{Response: joinResponse(feedback, closing), SessionData: s}, nil
	}

	continuation, err := c.generateStory(ctx, buildContinuationPrompt(s.StoryParts, message, words))
	if err != nil {
		return nil, fmt.Errorf("continuation: %w", err)
	}
	s.StoryParts = append(s.StoryParts, continuation)
	s.ContentVocabulary = append(s.ContentVocabulary, words...)
	s.CurrentStep++

	return &TurnResponse{Response: joinResponse(feedback, continuation), SessionData: s}, nil
}

// completedStoryTurn handles messages after the story ended but before
// quizzing started. A clearly new topic restarts everything; anything
// conversational gets the terminal acknowledgement.
func (c *Controller) completedStoryTurn(ctx context.Context, s *SessionData, message string) (*TurnResponse, error) {
	if !suppressTopicDetection(message) {
		if newTopic := topic.Resolve(message); newTopic != s.Topic {
			return c.openStory(ctx, s, message)
		}
	}
	return &TurnResponse{Response: theEndResponse, SessionData: s}, nil
}

// suppressTopicDetection guards against reading a casual remark about the
// finished story as a request for a new one.
func suppressTopicDetection(message string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(message))
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return true
	}

	acknowledgements := []string{"ok", "okay", "cool", "nice", "wow", "great", "awesome", "thanks", "thank", "yay", "fun", "good"}
	for _, a := range acknowledgements {
		if fields[0] == a {
			return true
		}
	}

	questionWords := []string{"what", "how", "why", "when", "where", "who", "did", "do", "is", "was", "can", "could"}
	for _, q := range questionWords {
		if fields[0] == q {
			return true
		}
	}

	pronouns := []string{"it", "that", "this", "they", "he", "she", "the"}
	for _, p := range pronouns {
		if fields[0] == p {
			return true
		}
	}

	return false
}

// vocabularyQuestion serves the next quiz question, preferring words
// harvested from the story text over the curated bank so every question
// refers to something the child just read.
func (c *Controller) vocabularyQuestion(ctx context.Context, s *SessionData) (*TurnResponse, error) {
	if s.VocabularyPhase.QuestionsAsked >= s.VocabularyPhase.MaxQuestions {
		return c.finishVocabulary(s), nil
	}

	storyText := s.StoryText()
	word, sentence, definition := c.nextQuizWord(s, storyText)
	if word == "" {
		// Both pools exhausted: skip straight to finish.
		return c.finishVocabulary(s), nil
	}

	question := c.generateQuestion(ctx, word, sentence, definition)
	if question == nil {
		return c.finishVocabulary(s), nil
	}

	s.AddAskedWord(word)
	s.VocabularyPhase.IsActive = true
	s.VocabularyPhase.QuestionsAsked++

	passage := sentence
	if passage == "" {
		// Last resort: quote the whole story rather than fail.
		passage = storyText
	}
	response := fmt.Sprintf("Let's look at a word from our story!\n\n%s\n\nHere's your question:", passage)

	return &TurnResponse{
		Response:      response,
		VocabQuestion: question,
		SessionData:   s,
	}, nil
}

// nextQuizWord picks the next word to quiz: content-derived first, then
// the bank. Returns the word, its containing sentence (when locatable),
// and its curated definition (when known).
func (c *Controller) nextQuizWord(s *SessionData, text string) (word, sentence, definition string) {
	for _, candidate := range content.ExtractVocabulary(text, s.ContentVocabulary) {
		if s.WasAsked(candidate) {
			continue
		}
		word = candidate
		break
	}

	if word == "" {
		entry := c.bank.Select(s.Topic, s.AskedVocabWords, nil)
		if entry == nil {
			return "", "", ""
		}
		word = entry.Word
		definition = entry.Definition
	} else if e, ok := c.bank.Lookup(word); ok {
		definition = e.Definition
	}

	if found, ok := content.FindSentence(word, text); ok {
		sentence = found
	}
	return word, sentence, definition
}

// finishVocabulary closes the quiz phase and offers new topics.
func (c *Controller) finishVocabulary(s *SessionData) *TurnResponse {
	s.VocabularyPhase.IsComplete = true
	s.VocabularyPhase.IsActive = false
	s.AwaitingStoryConfirmation = true

	suggestions := topic.Suggestions()
	response := fmt.Sprintf(
		"Great job with those words! Would you like another story? We could try %s — or anything else you can imagine!",
		strings.Join(suggestions, ", "))

	return &TurnResponse{
		Response:       response,
		SessionData:    s,
		SuggestedTheme: suggestions[0],
	}
}

// confirmationTurn classifies the child's reply after a vocabulary round.
// The positive branch is deliberately permissive: any non-empty reply
// that isn't clearly negative starts a new story.
func (c *Controller) confirmationTurn(ctx context.Context, s *SessionData, message string) (*TurnResponse, error) {
	trimmed := strings.TrimSpace(strings.ToLower(message))

	if trimmed == "" {
		// Only an empty reply is ambiguous under the permissive rule.
		return &TurnResponse{Response: ambiguousReply, SessionData: s}, nil
	}

	negatives := []string{"no", "nope", "nah", "no thanks", "no thank you", "stop", "quit", "bye", "goodbye", "done", "not now"}
	for _, n := range negatives {
		if trimmed == n || strings.HasPrefix(trimmed, n+" ") {
			s.AwaitingStoryConfirmation = false
			return &TurnResponse{Response: goodbyeResponse, SessionData: s}, nil
		}
	}

	return c.openStory(ctx, s, message)
}

// pickIntendedWords chooses bank words for the generator to feature,
// avoiding words already featured or quizzed this arc.
func (c *Controller) pickIntendedWords(s *SessionData) []string {
	avoid := append(append([]string{}, s.ContentVocabulary...), s.AskedVocabWords...)
	var words []string
	for range c.cfg.WordsPerUnit {
		e := c.bank.Select(s.Topic, avoid, nil)
		if e == nil {
			break
		}
		avoid = append(avoid, e.Word)
		words = append(words, e.Word)
	}
	return words
}

// generateStory runs one prose generation call.
func (c *Controller) generateStory(ctx context.Context, prompt string) (string, error) {
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      storySystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty generation")
	}
	return text, nil
}

// writingFeedback asks for one encouraging line about the child's
// contribution. Best-effort: errors are logged and swallowed.
func (c *Controller) writingFeedback(ctx context.Context, contribution string) string {
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      feedbackSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: contribution}},
		MaxTokens:   100,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		c.logger.Debug("writing feedback unavailable", "error", err)
		return ""
	}
	return resp.Text()
}

func joinResponse(feedback, body string) string {
	if feedback == "" {
		return body
	}
	return feedback + "\n\n" + body
}
