package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
)

// Defaults used by NewGenerator and the package-level default instance.
const (
	// DefaultAlphabet is digits plus uppercase letters, excluding I, L and O
	// which read ambiguously next to 1 and 0.
	DefaultAlphabet = "0123456789ABCDEFGHJKMNPQRSTUVWXYZ"

	// DefaultLength is the number of symbols per generated identifier.
	DefaultLength = 8

	// DefaultMaxAttempts bounds the retry loop when freshly drawn candidates
	// collide with identifiers that were already issued.
	DefaultMaxAttempts = 1000
)

// Sentinel errors returned by Generate. Callers match them with errors.Is.
var (
	// ErrSaturated means the attempt budget was exhausted without finding an
	// identifier this instance has not issued before. The caller decides
	// whether to retry with a larger alphabet or length.
	ErrSaturated = errors.New("identifier space saturated")

	// ErrEntropyUnavailable means the secure random source failed on every
	// attempt, so no candidate was ever drawn.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
)

// Generator issues fixed-length identifiers composed of symbols from a
// configured alphabet, unique across the lifetime of the instance. The
// issued set only grows; uniqueness is scoped to process memory, not shared
// across processes.
//
// A Generator is safe for concurrent use. The duplicate check and the insert
// happen under one lock, so two calls can never observe or return the same
// identifier.
type Generator struct {
	alphabet    string
	length      int
	maxAttempts int
	log         *slog.Logger

	mu     sync.Mutex
	issued map[string]struct{}
}

// Option configures a Generator.
type Option func(*Generator)

// WithAlphabet sets the symbol alphabet. It must be non-empty, contain no
// duplicate symbols, and hold at most 256 symbols.
func WithAlphabet(alphabet string) Option {
	return func(g *Generator) { g.alphabet = alphabet }
}

// WithLength sets the number of symbols per identifier.
func WithLength(length int) Option {
	return func(g *Generator) { g.length = length }
}

// WithMaxAttempts sets the retry budget for Generate. Zero means every call
// fails immediately with ErrSaturated.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = n }
}

// WithLogger sets the logger used for entropy warnings and saturation errors.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// NewGenerator creates a Generator. Without options it uses DefaultAlphabet,
// DefaultLength and DefaultMaxAttempts and logs through slog.Default.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		alphabet:    DefaultAlphabet,
		length:      DefaultLength,
		maxAttempts: DefaultMaxAttempts,
		issued:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.alphabet == "" {
		return nil, errors.New("alphabet cannot be empty")
	}
	if len(g.alphabet) > 256 {
		return nil, fmt.Errorf("alphabet holds %d symbols, max is 256", len(g.alphabet))
	}
	seen := make(map[byte]struct{}, len(g.alphabet))
	for i := 0; i < len(g.alphabet); i++ {
		if _, dup := seen[g.alphabet[i]]; dup {
			return nil, fmt.Errorf("alphabet contains duplicate symbol %q", g.alphabet[i])
		}
		seen[g.alphabet[i]] = struct{}{}
	}
	if g.length <= 0 {
		return nil, fmt.Errorf("length must be positive, got %d", g.length)
	}
	if g.maxAttempts < 0 {
		return nil, fmt.Errorf("max attempts cannot be negative, got %d", g.maxAttempts)
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	return g, nil
}

// Generate returns a fresh identifier that this instance has never issued
// before. It retries on collisions and on entropy failures, each consuming
// one attempt, up to the configured budget.
//
// On exhaustion it returns ErrSaturated, or ErrEntropyUnavailable if the
// random source failed on every attempt. It never returns an empty string
// alongside a nil error.
func (g *Generator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var drawErr error
	drawn := false
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		candidate, err := g.draw()
		if err != nil {
			drawErr = err
			g.log.Warn("random draw failed",
				"attempt", attempt,
				"max_attempts", g.maxAttempts,
				"error", err)
			continue
		}
		drawn = true
		if _, dup := g.issued[candidate]; dup {
			continue
		}
		g.issued[candidate] = struct{}{}
		return candidate, nil
	}

	if !drawn && drawErr != nil {
		g.log.Error("identifier generation failed",
			"attempts", g.maxAttempts,
			"error", drawErr)
		return "", fmt.Errorf("%w: %v", ErrEntropyUnavailable, drawErr)
	}
	g.log.Error("identifier space exhausted",
		"attempts", g.maxAttempts,
		"issued", len(g.issued))
	return "", fmt.Errorf("%w after %d attempts", ErrSaturated, g.maxAttempts)
}

// draw samples one candidate of g.length symbols uniformly from the
// alphabet. Random bytes at or above the largest multiple of the alphabet
// size that fits in a byte are rejected, which keeps the distribution
// uniform for alphabet sizes that do not divide 256.
func (g *Generator) draw() (string, error) {
	limit := 256 - 256%len(g.alphabet)
	out := make([]byte, g.length)
	buf := make([]byte, g.length)
	filled := 0
	for filled < g.length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out[filled] = g.alphabet[int(b)%len(g.alphabet)]
			filled++
			if filled == g.length {
				break
			}
		}
	}
	return string(out), nil
}

// Exists reports whether id was issued by this instance.
func (g *Generator) Exists(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.issued[id]
	return ok
}

// Issued returns the number of identifiers issued so far.
func (g *Generator) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.issued)
}

// Alphabet returns the configured symbol alphabet.
func (g *Generator) Alphabet() string { return g.alphabet }

// Length returns the configured identifier length.
func (g *Generator) Length() int { return g.length }

// MaxAttempts returns the configured retry budget.
func (g *Generator) MaxAttempts() int { return g.maxAttempts }

// Keyspace returns the number of distinct identifiers this configuration can
// express: len(alphabet) ^ length.
func (g *Generator) Keyspace() *big.Int {
	return new(big.Int).Exp(
		big.NewInt(int64(len(g.alphabet))),
		big.NewInt(int64(g.length)),
		nil)
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

// Default returns the shared process-wide generator, built on first use with
// the package defaults. Prefer constructing and injecting a Generator;
// Default exists for call sites that have no instance to thread through.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen, _ = NewGenerator() // package defaults always validate
	})
	return defaultGen
}

// Generate issues an identifier from the shared default generator.
func Generate() (string, error) { return Default().Generate() }

// Exists reports whether the shared default generator issued id.
func Exists(id string) bool { return Default().Exists(id) }
