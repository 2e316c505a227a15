package shortener

import (
	"context"
	"fmt"
	"strings"
)

// Base62 characters: 0-9, a-z, A-Z (case sensitive)
const Base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator defines the interface for generating short codes
type Generator interface {
	// GenerateCode returns a fresh short code that no live record is using,
	// or ErrGenerationExhausted when the attempt budget runs out
	GenerateCode(ctx context.Context) (string, error)
}

// Oracle reports whether a live record already uses the given code.
// It is backed by the store and must reflect only non-deleted records.
type Oracle func(ctx context.Context, code string) (bool, error)

// RandomSource supplies random alphabet indexes. It is injectable so tests
// can drive the generator with a deterministic or adversarial sequence.
type RandomSource interface {
	// IntN returns a uniformly random int in [0, n)
	IntN(n int) int
}

// Config holds configuration for code generation
type Config struct {
	Length   int    `json:"length"`   // number of characters per code
	Alphabet string `json:"alphabet"` // character set codes are drawn from
	Attempts int    `json:"attempts"` // retry budget for finding a unique code
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Length:   6,
		Alphabet: Base62Alphabet,
		Attempts: 10,
	}
}

// Validate validates the generation configuration values
func (c Config) Validate() error {
	if c.Length <= 0 {
		return fmt.Errorf("code length must be positive, got: %d", c.Length)
	}

	if c.Alphabet == "" {
		return fmt.Errorf("alphabet cannot be empty")
	}

	for i, ch := range c.Alphabet {
		if strings.ContainsRune(c.Alphabet[:i], ch) {
			return fmt.Errorf("alphabet contains duplicate character %q", ch)
		}
	}

	if c.Attempts <= 0 {
		return fmt.Errorf("generation attempts must be positive, got: %d", c.Attempts)
	}

	return nil
}
