package chat

import (
	"fmt"
	"strings"
)

const storySystemPrompt = `You are a warm, playful storyteller writing together with a young reader (ages 6-10).

Rules:
- Write content suitable for young children. No violence, romance, or scary elements. Simple language, positive messages.
- Write 2-4 short sentences per turn, then stop so the child can add the next part.
- Never break character or mention that you are an AI.
- You will be given vocabulary words to feature. Use each one naturally in the story and wrap it in double asterisks, like **curious**. Only wrap the vocabulary words themselves, nothing else.
- If asked to end the story, write a satisfying final beat of 3-5 sentences that wraps up what happened.`

const factsSystemPrompt = `You are an enthusiastic teacher sharing fun facts with a young reader (ages 6-10).

Rules:
- Share exactly one surprising, true, child-friendly fact per turn, in 2-3 short sentences.
- Simple language, no scary or grown-up content.
- You will be given vocabulary words to feature. Use each one naturally and wrap it in double asterisks, like **habitat**. Only wrap the vocabulary words themselves.
- Do not repeat any fact from the "already shared" list.`

const feedbackSystemPrompt = `You are a kind writing coach for young children. Given one sentence or short paragraph a child added to a story, reply with a single short encouraging sentence that names one concrete thing they did well. No criticism, no suggestions, no emoji.`

const questionSystemPrompt = `You write multiple-choice vocabulary questions for young readers (ages 6-10). Given a word, its context, and optionally a definition, produce one question asking what the word means, with exactly 4 answer options where exactly one is correct. Distractors must be plausible but clearly wrong to a child who understood the word. Keep language simple.`

// buildOpeningPrompt asks for the first beat of a story on topic,
// featuring the given vocabulary words.
func buildOpeningPrompt(topic string, words []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Start a brand-new story about: %s\n", topic)
	writeFeatureWords(&b, words)
	b.WriteString("End at a moment where the child can decide what happens next.")
	return b.String()
}

// buildContinuationPrompt carries the story so far and the child's latest
// contribution.
func buildContinuationPrompt(parts []string, contribution string, words []string) string {
	var b strings.Builder
	b.WriteString("The story so far:\n")
	b.WriteString(strings.Join(parts, "\n"))
	fmt.Fprintf(&b, "\n\nThe child just added: %s\n\n", contribution)
	b.WriteString("Continue the story from the child's idea.\n")
	writeFeatureWords(&b, words)
	return b.String()
}

// buildClosingPrompt asks for the final beat.
func buildClosingPrompt(parts []string, words []string) string {
	var b strings.Builder
	b.WriteString("The story so far:\n")
	b.WriteString(strings.Join(parts, "\n"))
	b.WriteString("\n\nBring the story to a happy, satisfying end now.\n")
	writeFeatureWords(&b, words)
	return b.String()
}

// buildFactPrompt asks for the next fact, avoiding repeats.
func buildFactPrompt(topic string, words []string, priorFacts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	writeFeatureWords(&b, words)
	b.WriteString("Already shared:\n")
	if len(priorFacts) == 0 {
		b.WriteString("None\n")
	} else {
		for i, f := range priorFacts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, f)
		}
	}
	return b.String()
}

// buildQuestionPrompt gives the question writer the word in context.
func buildQuestionPrompt(word, sentence, definition string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\n", word)
	if sentence != "" {
		fmt.Fprintf(&b, "Context: %s\n", sentence)
	}
	if definition != "" {
		fmt.Fprintf(&b, "Definition: %s\n", definition)
	}
	return b.String()
}

func writeFeatureWords(b *strings.Builder, words []string) {
	if len(words) == 0 {
		return
	}
	fmt.Fprintf(b, "Vocabulary words to feature (wrap each in **): %s\n", strings.Join(words, ", "))
}
