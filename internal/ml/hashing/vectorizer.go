// Package hashing maps text to fixed-size sparse vectors with the hashing trick.
// It keeps no vocabulary: a Config fully determines the mapping.
package hashing

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Norm names accepted by Config.Norm.
const (
	NormNone = ""
	NormL1   = "l1"
	NormL2   = "l2"
)

// DefaultFeatures is the default feature space size (2^20).
const DefaultFeatures = 1 << 20

// Config is the complete, serialisable state of a Vectorizer.
type Config struct {
	NFeatures     int    `json:"n_features"`
	Lowercase     bool   `json:"lowercase"`
	AlternateSign bool   `json:"alternate_sign"`
	Norm          string `json:"norm"`
	MinTokenLen   int    `json:"min_token_len"`
}

// DefaultConfig returns 2^20 features, lower-casing, alternating sign, L2 norm
// and tokens of at least two word characters.
func DefaultConfig() Config {
	return Config{
		NFeatures:     DefaultFeatures,
		Lowercase:     true,
		AlternateSign: true,
		Norm:          NormL2,
		MinTokenLen:   2,
	}
}

// Validate checks the configuration for correctness.
func (c Config) Validate() error {
	if c.NFeatures <= 0 {
		return fmt.Errorf("n_features must be positive, got %d", c.NFeatures)
	}
	switch c.Norm {
	case NormNone, NormL1, NormL2:
	default:
		return fmt.Errorf("norm must be \"\", \"l1\" or \"l2\", got %q", c.Norm)
	}
	if c.MinTokenLen < 0 {
		return fmt.Errorf("min_token_len must not be negative, got %d", c.MinTokenLen)
	}
	return nil
}

// Vectorizer is a stateless hashing vectorizer. Safe for concurrent use.
type Vectorizer struct {
	cfg Config
}

// New creates a Vectorizer from a validated config.
func New(cfg Config) (*Vectorizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("hashing vectorizer: %w", err)
	}
	return &Vectorizer{cfg: cfg}, nil
}

// Config returns the vectorizer configuration.
func (v *Vectorizer) Config() Config { return v.cfg }

// NFeatures returns the output dimension.
func (v *Vectorizer) NFeatures() int { return v.cfg.NFeatures }

// Transform maps text to a sparse vector of length NFeatures.
// Empty text, or text without tokens, yields the zero vector.
func (v *Vectorizer) Transform(text string) Vector {
	acc := make(map[int]float64)
	for _, tok := range v.Tokenize(text) {
		h := xxhash.Sum64String(tok)
		idx := int(h % uint64(v.cfg.NFeatures))
		val := 1.0
		if v.cfg.AlternateSign && h>>63 == 1 {
			val = -1.0
		}
		acc[idx] += val
	}

	indices := make([]int, 0, len(acc))
	for idx, val := range acc {
		if val != 0 {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for k, idx := range indices {
		values[k] = acc[idx]
	}

	vec := NewVector(v.cfg.NFeatures, indices, values)
	vec.normalize(v.cfg.Norm)
	return vec
}

// TransformBatch maps every text in order.
func (v *Vectorizer) TransformBatch(texts []string) []Vector {
	out := make([]Vector, len(texts))
	for i, t := range texts {
		out[i] = v.Transform(t)
	}
	return out
}

// Tokenize splits text into runs of letters, digits and underscores,
// dropping runs shorter than MinTokenLen runes.
func (v *Vectorizer) Tokenize(text string) []string {
	if v.cfg.Lowercase {
		text = strings.ToLower(text)
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= v.cfg.MinTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
