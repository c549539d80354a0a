package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/wordspark/wordspark/internal/llm"
	"github.com/wordspark/wordspark/internal/vocab"
)

func testBank() *vocab.Bank {
	entries := []vocab.Entry{
		{Word: "curious", Definition: "eager to learn or know something", Difficulty: 2},
		{Word: "brave", Definition: "showing courage", Difficulty: 2},
		{Word: "ancient", Definition: "very, very old", Difficulty: 2},
		{Word: "enormous", Definition: "extremely big", Difficulty: 3},
		{Word: "luminous", Definition: "giving off light", Difficulty: 3},
		{Word: "galaxy", Definition: "a huge group of stars", Difficulty: 3, Topic: "space"},
		{Word: "orbit", Definition: "the path an object takes around another", Difficulty: 2, Topic: "space"},
	}
	return vocab.NewBank(entries).WithRand(rand.New(rand.NewPCG(1, 2)))
}

func testController(provider llm.Provider) *Controller {
	return New(provider, testBank(), DefaultConfig(), slog.New(slog.DiscardHandler))
}

func questionJSON(t *testing.T) json.RawMessage {
	t.Helper()
	out := questionOutput{
		Question:     "What does it mean?",
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: 1,
	}
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestHandleTurn_OpensStoryAndResolvesTopic(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("Once upon a time, a **curious** astronaut floated past a **luminous** moon."),
	)
	c := testController(provider)

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message: "tell me about rockets and space",
		Mode:    ModeStory,
	})

	if resp.SessionData.Topic != "space" {
		t.Errorf("topic = %q, want %q", resp.SessionData.Topic, "space")
	}
	if len(resp.SessionData.StoryParts) != 1 {
		t.Fatalf("storyParts = %d, want 1", len(resp.SessionData.StoryParts))
	}
	if resp.SessionData.SessionID == "" {
		t.Error("expected a session id to be minted")
	}
	if resp.Response == "" || resp.Response == apologyResponse {
		t.Errorf("unexpected response %q", resp.Response)
	}
}

func TestHandleTurn_ProviderFailurePreservesCallerState(t *testing.T) {
	provider := llm.NewMockProvider() // empty queue: every call fails
	c := testController(provider)

	original := NewSessionData()
	original.Topic = "space"
	original.StoryParts = []string{"The rocket lifted off."}
	original.CurrentStep = 3

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "then it landed on the moon",
		Mode:        ModeStory,
		SessionData: original,
	})

	if resp.Response != apologyResponse {
		t.Errorf("response = %q, want apology", resp.Response)
	}
	if resp.SessionData != original {
		t.Error("failed turn must hand back the caller's session untouched")
	}
	if len(original.StoryParts) != 1 || original.CurrentStep != 3 {
		t.Errorf("caller state mutated: %+v", original)
	}
}

func TestHandleTurn_UnknownModeGivesGuidance(t *testing.T) {
	c := testController(llm.NewMockProvider())

	resp := c.HandleTurn(context.Background(), TurnRequest{Message: "hi", Mode: Mode("trivia")})

	if resp.Response != unknownModeHint {
		t.Errorf("response = %q, want mode guidance", resp.Response)
	}
	if resp.VocabQuestion != nil {
		t.Error("guidance turn must not carry a question")
	}
}

func TestContinueStory_EndsOnStepAndLengthBound(t *testing.T) {
	// Feedback call, then the closing beat.
	provider := llm.NewMockProvider(
		llm.TextResponse("Great detail in your sentence!"),
		llm.TextResponse("And so the **brave** crew flew home. The end was **enormous** fun."),
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.CurrentStep = 3
	s.StoryParts = []string{strings.Repeat("The rocket flew higher and higher. ", 15)}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "they found a friendly alien",
		Mode:        ModeStory,
		SessionData: s,
	})

	if !resp.SessionData.IsComplete {
		t.Fatal("story should have ended: step >= 3 and > 400 chars")
	}
	if resp.VocabQuestion != nil {
		t.Error("ending turn must not carry a vocabulary question")
	}
	// caller's copy untouched
	if s.IsComplete {
		t.Error("caller session mutated before commit")
	}
}

func TestContinueStory_ShortStoryKeepsGoing(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("Nice idea!"),
		llm.TextResponse("The **curious** dog wagged its tail."),
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "animals"
	s.CurrentStep = 4
	s.StoryParts = []string{"A dog found a bone."}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "it barked",
		Mode:        ModeStory,
		SessionData: s,
	})

	if resp.SessionData.IsComplete {
		t.Error("short story must not end on step count alone below the hard cap")
	}
	if resp.SessionData.CurrentStep != 5 {
		t.Errorf("currentStep = %d, want 5", resp.SessionData.CurrentStep)
	}
}

func TestContinueStory_HardStepCapEndsRegardlessOfLength(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("Lovely!"),
		llm.TextResponse("They all went to sleep. The end."),
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "animals"
	s.CurrentStep = 6
	s.StoryParts = []string{"Short."}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "more",
		Mode:        ModeStory,
		SessionData: s,
	})

	if !resp.SessionData.IsComplete {
		t.Error("step cap reached: story must end even when short")
	}
}

func TestVocabularyPhase_QuestionCapInvariant(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON(t)},
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.IsComplete = true
	s.StoryParts = []string{"The **galaxy** sparkled. A **curious** fox watched."}
	s.VocabularyPhase.QuestionsAsked = 2

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "next_vocabulary",
		Mode:        ModeStory,
		SessionData: s,
	})
	if resp.VocabQuestion == nil {
		t.Fatal("expected a question below the cap")
	}
	if got := resp.SessionData.VocabularyPhase.QuestionsAsked; got != 3 {
		t.Fatalf("questionsAsked = %d, want 3", got)
	}

	// At the cap: next_vocabulary must finish, never exceed.
	resp2 := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "next_vocabulary",
		Mode:        ModeStory,
		SessionData: resp.SessionData,
	})
	if resp2.VocabQuestion != nil {
		t.Error("question served past the cap")
	}
	if got := resp2.SessionData.VocabularyPhase.QuestionsAsked; got != 3 {
		t.Errorf("questionsAsked = %d, want 3", got)
	}
	if !resp2.SessionData.VocabularyPhase.IsComplete {
		t.Error("phase should be complete at the cap")
	}
	if !resp2.SessionData.AwaitingStoryConfirmation {
		t.Error("finishing the phase should await a new-story decision")
	}
	if resp2.SuggestedTheme == "" {
		t.Error("finish should suggest a theme")
	}
}

func TestVocabularyPhase_CommandAfterCompletionRepeatsOffer(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON(t)},
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.IsComplete = true
	s.StoryParts = []string{"The **galaxy** sparkled."}
	s.VocabularyPhase = VocabularyPhase{QuestionsAsked: 1, MaxQuestions: 3, IsComplete: true}
	s.AwaitingStoryConfirmation = true

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "start_vocabulary",
		Mode:        ModeStory,
		SessionData: s,
	})

	if resp.VocabQuestion != nil {
		t.Error("closed phase must not serve another question")
	}
	if got := resp.SessionData.VocabularyPhase.QuestionsAsked; got != 1 {
		t.Errorf("questionsAsked = %d, want 1", got)
	}
	if resp.SessionData.VocabularyPhase.IsActive {
		t.Error("closed phase must stay inactive")
	}
	if !resp.SessionData.AwaitingStoryConfirmation {
		t.Error("the new-story offer should stand")
	}
}

func TestVocabularyPhase_QuizzesContentWordFirst(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Content: questionJSON(t)},
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.IsComplete = true
	s.StoryParts = []string{"The ship sailed past a **luminous** nebula."}
	s.ContentVocabulary = []string{"luminous"}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "start_vocabulary",
		Mode:        ModeStory,
		SessionData: s,
	})

	if resp.VocabQuestion == nil {
		t.Fatal("expected a question")
	}
	if len(resp.SessionData.AskedVocabWords) != 1 || !strings.EqualFold(resp.SessionData.AskedVocabWords[0], "luminous") {
		t.Errorf("askedVocabWords = %v, want the bolded story word first", resp.SessionData.AskedVocabWords)
	}
	if !strings.Contains(resp.Response, "luminous") {
		t.Errorf("response should quote the containing sentence, got %q", resp.Response)
	}
}

func TestFinishVocabulary_ExplicitCommand(t *testing.T) {
	c := testController(llm.NewMockProvider())

	s := NewSessionData()
	s.Topic = "space"
	s.VocabularyPhase.IsActive = true
	s.VocabularyPhase.QuestionsAsked = 1

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "finish_vocabulary",
		Mode:        ModeStory,
		SessionData: s,
	})

	vp := resp.SessionData.VocabularyPhase
	if !vp.IsComplete || vp.IsActive {
		t.Errorf("phase = %+v, want complete and inactive", vp)
	}
	if !resp.SessionData.AwaitingStoryConfirmation {
		t.Error("expected the new-story offer")
	}
}

func TestConfirmation_DeclineSaysGoodbye(t *testing.T) {
	c := testController(llm.NewMockProvider())

	s := NewSessionData()
	s.Topic = "space"
	s.IsComplete = true
	s.AwaitingStoryConfirmation = true

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "no thanks",
		Mode:        ModeStory,
		SessionData: s,
	})

	if resp.Response != goodbyeResponse {
		t.Errorf("response = %q, want goodbye", resp.Response)
	}
	if resp.SessionData.AwaitingStoryConfirmation {
		t.Error("confirmation flag should be cleared")
	}
	if resp.SessionData.Topic != "space" {
		t.Errorf("topic = %q, decline must not change it", resp.SessionData.Topic)
	}
}

func TestConfirmation_AcceptStartsNewStory(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("Deep under the sea, a **curious** crab waved hello."),
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.IsComplete = true
	s.AwaitingStoryConfirmation = true
	s.StoryParts = []string{"old story"}
	s.AskedVocabWords = []string{"galaxy"}
	s.VocabularyPhase = VocabularyPhase{QuestionsAsked: 3, MaxQuestions: 3, IsComplete: true}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "yes! the ocean please",
		Mode:        ModeStory,
		SessionData: s,
	})

	sd := resp.SessionData
	if sd.Topic != "ocean" {
		t.Errorf("topic = %q, want %q", sd.Topic, "ocean")
	}
	if sd.IsComplete || sd.AwaitingStoryConfirmation {
		t.Error("new story should clear completion and confirmation state")
	}
	if len(sd.StoryParts) != 1 {
		t.Errorf("storyParts = %d, want the fresh opening only", len(sd.StoryParts))
	}
	if sd.VocabularyPhase.QuestionsAsked != 0 || sd.VocabularyPhase.IsComplete {
		t.Errorf("vocabulary phase not reset: %+v", sd.VocabularyPhase)
	}
}

func TestConfirmation_EmptyReplyReprompts(t *testing.T) {
	c := testController(llm.NewMockProvider())

	s := NewSessionData()
	s.Topic = "space"
	s.AwaitingStoryConfirmation = true

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "   ",
		Mode:        ModeStory,
		SessionData: s,
	})

	if resp.Response != ambiguousReply {
		t.Errorf("response = %q, want re-prompt", resp.Response)
	}
	if !resp.SessionData.AwaitingStoryConfirmation {
		t.Error("re-prompt must not clear the confirmation flag")
	}
}

func TestCompletedStory_CasualRemarkDoesNotRestart(t *testing.T) {
	c := testController(llm.NewMockProvider())

	tests := []string{
		"wow that was great",
		"what happened to the dog",
		"it was funny",
		"cool",
	}
	for _, msg := range tests {
		s := NewSessionData()
		s.Topic = "space"
		s.IsComplete = true
		s.StoryParts = []string{"done"}

		resp := c.HandleTurn(context.Background(), TurnRequest{
			Message:     msg,
			Mode:        ModeStory,
			SessionData: s,
		})
		if resp.Response != theEndResponse {
			t.Errorf("%q: response = %q, want terminal acknowledgement", msg, resp.Response)
		}
		if resp.SessionData.Topic != "space" {
			t.Errorf("%q: topic changed to %q", msg, resp.SessionData.Topic)
		}
	}
}

func TestCompletedStory_NewTopicRestarts(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("A **brave** knight rode toward the dragon's cave."),
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.IsComplete = true
	s.StoryParts = []string{"done"}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "lets do a dragon story now",
		Mode:        ModeStory,
		SessionData: s,
	})

	if resp.SessionData.Topic != "magic" {
		t.Errorf("topic = %q, want %q", resp.SessionData.Topic, "magic")
	}
	if resp.SessionData.IsComplete {
		t.Error("restart should clear completion")
	}
}

func TestFactsTurn_FirstFactQuizzesImmediately(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("Did you know one **galaxy** can hold billions of stars? It is truly enormous."),
		llm.MockResponse{Content: questionJSON(t)},
	)
	c := testController(provider)

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message: "Tell me about space",
		Mode:    ModeFacts,
	})

	sd := resp.SessionData
	if sd.Topic != "space" {
		t.Errorf("topic = %q, want %q", sd.Topic, "space")
	}
	if sd.FactsShown != 1 {
		t.Errorf("factsShown = %d, want 1", sd.FactsShown)
	}
	if len(sd.AllFacts) != 1 || sd.CurrentFact != sd.AllFacts[0] {
		t.Errorf("fact bookkeeping wrong: current=%q all=%v", sd.CurrentFact, sd.AllFacts)
	}
	if resp.VocabQuestion == nil {
		t.Error("facts mode should quiz immediately after each fact")
	}
	if len(sd.AskedVocabWords) != 1 {
		t.Errorf("askedVocabWords = %v, want one quizzed word", sd.AskedVocabWords)
	}
}

func TestFactsTurn_ContinueIsNeverATopic(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("An **orbit** around Earth takes about 90 minutes for a space station."),
		llm.MockResponse{Content: questionJSON(t)},
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.FactsShown = 1
	s.AllFacts = []string{"first fact"}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "continue",
		Mode:        ModeFacts,
		SessionData: s,
	})

	if resp.SessionData.Topic != "space" {
		t.Errorf("topic = %q, continue must stay on topic", resp.SessionData.Topic)
	}
	if resp.SessionData.FactsShown != 2 {
		t.Errorf("factsShown = %d, want 2", resp.SessionData.FactsShown)
	}
}

func TestFactsTurn_LastFactInvitesNewTopicOnly(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("A blue whale's heart is as big as a small car. Truly **enormous**."),
		llm.MockResponse{Content: questionJSON(t)},
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "ocean"
	s.FactsShown = 2
	s.AllFacts = []string{"a", "b"}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "continue",
		Mode:        ModeFacts,
		SessionData: s,
	})

	if resp.SessionData.FactsShown != 3 {
		t.Fatalf("factsShown = %d, want 3", resp.SessionData.FactsShown)
	}
	// The loop is done; the closing copy must ask for a topic, not
	// promise that "continue" yields more facts.
	if strings.Contains(strings.ToLower(resp.Response), "say continue") {
		t.Errorf("closing copy still advertises continue: %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "new topic") {
		t.Errorf("closing copy should invite a new topic, got %q", resp.Response)
	}
	if resp.SuggestedTheme == "" {
		t.Error("closing copy should carry a suggested theme")
	}
}

func TestFactsTurn_OfferAfterThreeFacts(t *testing.T) {
	c := testController(llm.NewMockProvider())

	s := NewSessionData()
	s.Topic = "space"
	s.FactsShown = 3
	s.AllFacts = []string{"a", "b", "c"}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "continue",
		Mode:        ModeFacts,
		SessionData: s,
	})

	if resp.SessionData.FactsShown != 3 {
		t.Errorf("factsShown = %d, offer turn must not advance the loop", resp.SessionData.FactsShown)
	}
	if resp.SuggestedTheme == "" {
		t.Error("offer should carry a suggested theme")
	}
	if resp.VocabQuestion != nil {
		t.Error("offer turn carries no question")
	}
}

func TestFactsTurn_NewTopicResetsArc(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.TextResponse("Some **ancient** sharks lived before the dinosaurs."),
		llm.MockResponse{Content: questionJSON(t)},
	)
	c := testController(provider)

	s := NewSessionData()
	s.Topic = "space"
	s.FactsShown = 3
	s.AllFacts = []string{"a", "b", "c"}
	s.AskedVocabWords = []string{"galaxy"}

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message:     "sharks in the ocean",
		Mode:        ModeFacts,
		SessionData: s,
	})

	sd := resp.SessionData
	if sd.Topic != "ocean" {
		t.Errorf("topic = %q, want %q", sd.Topic, "ocean")
	}
	if sd.FactsShown != 1 {
		t.Errorf("factsShown = %d, want reset then first fact", sd.FactsShown)
	}
	if len(sd.AllFacts) != 1 {
		t.Errorf("allFacts = %v, want fresh arc", sd.AllFacts)
	}
}

func TestFactsTurn_ContinueWithoutTopicAsksForOne(t *testing.T) {
	c := testController(llm.NewMockProvider())

	resp := c.HandleTurn(context.Background(), TurnRequest{
		Message: "continue",
		Mode:    ModeFacts,
	})

	if resp.SessionData.Topic != "" {
		t.Errorf("topic = %q, continue on a fresh session must not pick one", resp.SessionData.Topic)
	}
	if resp.SuggestedTheme == "" {
		t.Error("prompting for a topic should suggest one")
	}
}

func TestSessionData_JSONRoundTrip(t *testing.T) {
	s := NewSessionData()
	s.SessionID = "abc"
	s.Topic = "space"
	s.StoryParts = []string{"one", "two"}
	s.CurrentStep = 4
	s.IsComplete = true
	s.AskedVocabWords = []string{"galaxy"}
	s.AwaitingStoryConfirmation = true
	s.VocabularyPhase = VocabularyPhase{IsActive: true, QuestionsAsked: 2, MaxQuestions: 3}
	s.ContentVocabulary = []string{"luminous"}

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var back SessionData
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}

	raw2, err := json.Marshal(&back)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != string(raw2) {
		t.Errorf("round trip not idempotent:\n%s\n%s", raw, raw2)
	}
	for _, key := range []string{`"awaiting_story_confirmation"`, `"vocabularyPhase"`, `"storyParts"`, `"askedVocabWords"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("serialized session missing %s", key)
		}
	}
}

func TestNormalize_RepairsMaxQuestions(t *testing.T) {
	s := &SessionData{}
	s.Normalize()
	if s.VocabularyPhase.MaxQuestions != DefaultMaxQuestions {
		t.Errorf("maxQuestions = %d, want %d", s.VocabularyPhase.MaxQuestions, DefaultMaxQuestions)
	}
}

func TestNormalize_ClampsInflatedQuestionCount(t *testing.T) {
	s := &SessionData{
		VocabularyPhase: VocabularyPhase{QuestionsAsked: 5, MaxQuestions: 3},
	}
	s.Normalize()
	if s.VocabularyPhase.QuestionsAsked != 3 {
		t.Errorf("questionsAsked = %d, want clamped to 3", s.VocabularyPhase.QuestionsAsked)
	}
}

func TestAddAskedWord_CaseInsensitiveDedup(t *testing.T) {
	s := NewSessionData()
	if !s.AddAskedWord("Galaxy") {
		t.Fatal("first add should succeed")
	}
	if s.AddAskedWord("galaxy") {
		t.Error("case-insensitive duplicate should be rejected")
	}
	if len(s.AskedVocabWords) != 1 {
		t.Errorf("askedVocabWords = %v", s.AskedVocabWords)
	}
}

func TestSynthesizeQuestion_FallbackWhenGeneratorFails(t *testing.T) {
	c := testController(llm.NewMockProvider()) // generator always fails

	q := c.generateQuestion(context.Background(), "galaxy", "", "a huge group of stars")
	if q == nil {
		t.Fatal("expected a synthesized fallback question")
	}
	if len(q.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(q.Options))
	}
	if q.Options[q.CorrectIndex] != "a huge group of stars" {
		t.Errorf("correct option = %q", q.Options[q.CorrectIndex])
	}
	seen := map[string]bool{}
	for _, o := range q.Options {
		if seen[o] {
			t.Errorf("duplicate option %q", o)
		}
		seen[o] = true
	}
}

func TestSynthesizeQuestion_NilWithoutDefinition(t *testing.T) {
	c := testController(llm.NewMockProvider())
	if q := c.synthesizeQuestion("florble", ""); q != nil {
		t.Errorf("expected nil for an unknown word, got %+v", q)
	}
}
