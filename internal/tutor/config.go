package tutor

import "time"

// Config holds explanation request settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single streamed reply.
	Timeout time.Duration

	// Buffer is the capacity of the dispatcher's event channel.
	Buffer int
}

// DefaultConfig returns sensible defaults for explanations.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		Timeout:     30 * time.Second,
		Buffer:      64,
	}
}
