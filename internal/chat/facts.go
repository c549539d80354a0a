package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/wordspark/wordspark/internal/llm"
	"github.com/wordspark/wordspark/internal/topic"
)

const pickTopicPrompt = "What would you like to learn about? I know all kinds of amazing things!"

// factsTurn runs one turn of the facts-mode loop: topic selection, a
// bounded run of facts each followed immediately by a vocabulary
// question, then a topic offer.
func (c *Controller) factsTurn(ctx context.Context, s *SessionData, message string) (*TurnResponse, error) {
	// "continue" is reserved: it advances the loop and is never resolved
	// as a topic name.
	isContinue := ParseCommand(message) == CmdContinue

	if !isContinue && strings.TrimSpace(message) != "" {
		newTopic := topic.Resolve(message)
		if newTopic != s.Topic {
			s.ResetForTopic(newTopic)
		}
	}

	if s.Topic == "" {
		suggestions := topic.Suggestions()
		return &TurnResponse{
			Response:       pickTopicPrompt + " Maybe " + strings.Join(suggestions, ", ") + "?",
			SessionData:    s,
			SuggestedTheme: suggestions[0],
		}, nil
	}

	if s.FactsShown >= c.cfg.FactsPerTopic {
		return c.offerNewFactTopic(s), nil
	}

	return c.nextFact(ctx, s)
}

// nextFact generates one fact and attaches its vocabulary question in the
// same turn — facts mode quizzes immediately, it never defers.
func (c *Controller) nextFact(ctx context.Context, s *SessionData) (*TurnResponse, error) {
	words := c.pickIntendedWords(s)

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      factsSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildFactPrompt(s.Topic, words, s.AllFacts)}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("fact about %q: %w", s.Topic, err)
	}
	fact := resp.Text()
	if fact == "" {
		return nil, fmt.Errorf("empty fact generation")
	}

	s.FactsShown++
	s.CurrentFact = fact
	s.AllFacts = append(s.AllFacts, fact)
	s.ContentVocabulary = append(s.ContentVocabulary, words...)

	response := fact

	// Quiz on a word from this fact; skip silently when no word or
	// question is available.
	var question *VocabQuestion
	word, sentence, definition := c.nextQuizWord(s, fact)
	if word != "" {
		question = c.generateQuestion(ctx, word, sentence, definition)
		if question != nil {
			s.AddAskedWord(word)
			response += "\n\nQuick word check before the next fact!"
		}
	}

	out := &TurnResponse{
		Response:      response,
		VocabQuestion: question,
		SessionData:   s,
	}

	if s.FactsShown >= c.cfg.FactsPerTopic {
		suggestions := topic.Suggestions()
		out.Response += "\n\nThat was our last " + s.Topic + " fact for now! Tell me a new topic you'd like to explore. Maybe " + strings.Join(suggestions, ", ") + "?"
		out.SuggestedTheme = suggestions[0]
	} else {
		out.Response += "\n\nSay continue for another fact, or name a new topic!"
	}

	return out, nil
}

// offerNewFactTopic is the post-loop state: the child either names a new
// topic or keeps browsing suggestions.
func (c *Controller) offerNewFactTopic(s *SessionData) *TurnResponse {
	suggestions := topic.Suggestions()
	return &TurnResponse{
		Response: "We finished our " + s.Topic + " facts! What should we explore next? Maybe " +
			strings.Join(suggestions, ", ") + "?",
		SessionData:    s,
		SuggestedTheme: suggestions[0],
	}
}
