package chat

// Config bounds the conversation engine.
type Config struct {
	// MaxQuestions caps vocabulary questions per phase.
	MaxQuestions int

	// Story ending bounds: a story ends once CurrentStep reaches
	// MinStepsToEnd and the story text exceeds MinStoryChars, or
	// unconditionally at MaxSteps.
	MinStepsToEnd int
	MinStoryChars int
	MaxSteps      int

	// FactsPerTopic bounds the facts loop.
	FactsPerTopic int

	// WordsPerUnit is how many bank words each content unit asks the
	// generator to feature.
	WordsPerUnit int

	// Generation limits passed to the provider.
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the production bounds.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:  DefaultMaxQuestions,
		MinStepsToEnd: 3,
		MinStoryChars: 400,
		MaxSteps:      6,
		FactsPerTopic: 3,
		WordsPerUnit:  2,
		MaxTokens:     600,
		Temperature:   0.7,
	}
}
