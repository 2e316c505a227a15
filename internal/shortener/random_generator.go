package shortener

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

// RandomGenerator generates short codes by drawing each character uniformly
// at random from the configured alphabet, checking candidates against a
// uniqueness oracle. Collisions discard the whole candidate and redraw,
// bounded by the configured attempt budget.
//
// The oracle check and the eventual insert are not atomic; the store closes
// that race with a unique constraint on short_code, and the create operation
// retries on constraint violations within the same budget.
type RandomGenerator struct {
	config Config
	source RandomSource
	exists Oracle
}

// NewRandomGenerator creates a new random generator. A nil source falls back
// to math/rand/v2. The configuration is validated up front so a bad alphabet
// or length fails at startup, never per request.
func NewRandomGenerator(config Config, source RandomSource, exists Oracle) (*RandomGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator configuration: %w", err)
	}
	if exists == nil {
		return nil, fmt.Errorf("uniqueness oracle is required")
	}
	if source == nil {
		source = DefaultSource()
	}

	return &RandomGenerator{
		config: config,
		source: source,
		exists: exists,
	}, nil
}

// GenerateCode returns a candidate code that the oracle reports as unused.
// It never persists anything itself.
func (g *RandomGenerator) GenerateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.config.Attempts; attempt++ {
		candidate := g.draw()

		taken, err := g.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no unique code after %d attempts: %w", g.config.Attempts, ErrGenerationExhausted)
}

// draw builds one candidate, each character drawn independently
func (g *RandomGenerator) draw() string {
	var b strings.Builder
	b.Grow(g.config.Length)
	for i := 0; i < g.config.Length; i++ {
		b.WriteByte(g.config.Alphabet[g.source.IntN(len(g.config.Alphabet))])
	}
	return b.String()
}

// Config returns the generator configuration
func (g *RandomGenerator) Config() Config {
	return g.config
}

// mathSource adapts math/rand/v2 to RandomSource. The top-level functions
// are safe for concurrent use.
type mathSource struct{}

func (mathSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource returns the process-wide pseudo-random source
func DefaultSource() RandomSource {
	return mathSource{}
}

// Ensure RandomGenerator implements Generator interface
var _ Generator = (*RandomGenerator)(nil)
