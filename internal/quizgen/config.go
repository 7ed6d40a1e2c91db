package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated quiz; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxRetries is how many extra attempts a retryable validation
	// failure gets. The failure is described to the model on retry.
	MaxRetries int

	// DefaultCount is used when Input.Count is zero.
	DefaultCount int

	// MaxCount caps Input.Count.
	MaxCount int

	// MaxPriorQuestions is the maximum number of prior questions
	// to include in the prompt for deduplication.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
			&AnswerLeakValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxRetries:        2,
		DefaultCount:      5,
		MaxCount:          20,
		MaxPriorQuestions: 20,
	}
}
