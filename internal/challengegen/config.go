package challengegen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Timeout bounds one provisioning call end to end. Zero disables it.
	Timeout time.Duration

	// TokensPerChallenge is the response budget per requested challenge.
	TokensPerChallenge int

	// MaxTokens caps the total response budget of a batch request.
	MaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64

	// MaxAvoidTitles is the number of recently served titles listed in
	// the prompt.
	MaxAvoidTitles int

	// DefaultBatchSize is used by callers that do not pick a size.
	DefaultBatchSize int
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		Timeout:            15 * time.Second,
		TokensPerChallenge: 1500,
		MaxTokens:          12000,
		Temperature:        0.8,
		MaxAvoidTitles:     10,
		DefaultBatchSize:   5,
	}
}

// maxTokens scales the response budget with the expected count.
func (c Config) maxTokens(count int) int {
	n := c.TokensPerChallenge * count
	if c.MaxTokens > 0 && n > c.MaxTokens {
		n = c.MaxTokens
	}
	return n
}
