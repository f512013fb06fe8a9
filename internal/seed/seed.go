// Package seed provides deterministic pseudo-random selection from string
// seeds. The same seed always produces the same outcome across processes and
// restarts, which is what makes daily draws and quiz ordering reproducible
// without storing them.
package seed

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyInput is returned when a pick is requested from an empty list.
var ErrEmptyInput = errors.New("cannot pick from empty input")

// shuffleVersion salts shuffle draws so a future re-seeding of the shuffle
// algorithm does not disturb unrelated seeds.
const shuffleVersion = "v1"

// Hash computes a 32-bit polynomial hash of the seed string.
// Not cryptographic; collisions are acceptable, instability is not.
func Hash(seed string) uint32 {
	var h int32
	for _, r := range seed {
		h = h*31 + int32(r)
	}
	if h < 0 {
		// Negating math.MinInt32 overflows back to itself.
		if h == -2147483648 {
			return 0
		}
		h = -h
	}
	return uint32(h)
}

// Pick returns a deterministic index in [0, n) for the given seed.
func Pick(seed string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyInput
	}
	return int(Hash(seed) % uint32(n)), nil
}

// Fraction returns a deterministic value in [0, 1) for the given seed.
func Fraction(seed string) float64 {
	return float64(Hash(seed)) / float64(1<<31)
}

// IsBelow reports whether the seed's fraction falls below probability.
// A probability >= 1 always matches, <= 0 never does.
func IsBelow(seed string, probability float64) bool {
	return Fraction(seed) < probability
}

// Shuffle returns a deterministic permutation of [0, n). It runs a
// Fisher-Yates pass drawing each step's fraction from a derived seed.
func Shuffle(seed string, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		step := seed + ":" + shuffleVersion + ":" + strconv.Itoa(i)
		j := int(Fraction(step) * float64(i+1))
		if j > i {
			j = i
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Compose joins stable identifier parts into a seed string
// (e.g. date, kind, reference ID).
func Compose(parts ...string) string {
	return strings.Join(parts, ":")
}
