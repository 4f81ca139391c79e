// Package input builds the numeric arrays reduced by the application.
// Generated arrays are deterministic for a given length, seed and
// distribution, so runs can be repeated and compared.
package input

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	apperrors "github.com/agbru/recipsum/internal/errors"
)

// Distribution selects how element values are generated.
type Distribution string

const (
	// Uniform draws values uniformly from [1, 100).
	Uniform Distribution = "uniform"
	// Ones fills the array with 1.0; its reciprocal sum is exactly n.
	Ones Distribution = "ones"
	// Ramp sets element i to i+1; its reciprocal sum is the harmonic number H(n).
	Ramp Distribution = "ramp"
)

// Distributions lists the supported distributions.
func Distributions() []Distribution {
	return []Distribution{Uniform, Ones, Ramp}
}

// ParseDistribution resolves a case-insensitive distribution name.
func ParseDistribution(name string) (Distribution, error) {
	d := Distribution(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Distributions(), d) {
		return d, nil
	}
	return "", apperrors.NewInvalidArgument("distribution", "unknown distribution %q (want one of %v)", name, Distributions())
}

// Generate returns n values drawn from dist. The seed only matters for
// Uniform.
func Generate(n int, seed uint64, dist Distribution) ([]float64, error) {
	if n <= 0 {
		return nil, apperrors.NewInvalidArgument("size", "must be positive, got %d", n)
	}
	values := make([]float64, n)
	switch dist {
	case Uniform, "":
		r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for i := range values {
			values[i] = 1 + 99*r.Float64()
		}
	case Ones:
		for i := range values {
			values[i] = 1
		}
	case Ramp:
		for i := range values {
			values[i] = float64(i + 1)
		}
	default:
		return nil, apperrors.NewInvalidArgument("distribution", "unknown distribution %q", dist)
	}
	return values, nil
}

// Describe returns a short human-readable summary of an input.
func Describe(values []float64, dist Distribution) string {
	if dist == "" {
		dist = Uniform
	}
	return fmt.Sprintf("%d elements (%s)", len(values), dist)
}
