package seed

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	seeds := []string{"", "a", "2026-08-30:rune:user-42", "日の石"}
	for _, s := range seeds {
		assert.Equal(t, Hash(s), Hash(s), "seed %q", s)
	}
}

func TestHashKnownValues(t *testing.T) {
	// hash*31 + charCode with 32-bit wraparound, then absolute value.
	assert.Equal(t, uint32(0), Hash(""))
	assert.Equal(t, uint32('a'), Hash("a"))
	assert.Equal(t, uint32('a')*31+uint32('b'), Hash("ab"))
}

func TestPickDeterministic(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		for i := 0; i < 50; i++ {
			s := "seed:" + strconv.Itoa(i)
			first, err := Pick(s, n)
			require.NoError(t, err)
			second, err := Pick(s, n)
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.GreaterOrEqual(t, first, 0)
			assert.Less(t, first, n)
		}
	}
}

func TestPickEmptyInput(t *testing.T) {
	_, err := Pick("anything", 0)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Pick("anything", -3)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestPickRoughlyUniform(t *testing.T) {
	const buckets = 10
	const draws = 10000

	counts := make([]int, buckets)
	for i := 0; i < draws; i++ {
		idx, err := Pick("uniformity:"+strconv.Itoa(i), buckets)
		require.NoError(t, err)
		counts[idx]++
	}

	// Chi-square against the uniform expectation. 16.92 is the 95th
	// percentile for 9 degrees of freedom; allow a generous margin since
	// the hash is not a high-quality PRNG.
	expected := float64(draws) / buckets
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	assert.Less(t, chi, 30.0, "distribution too skewed: %v", counts)
}

func TestFractionRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		f := Fraction("frac:" + strconv.Itoa(i))
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestIsBelowBounds(t *testing.T) {
	assert.True(t, IsBelow("any", 1.1))
	assert.False(t, IsBelow("any", 0))
}

func TestShuffleIsPermutation(t *testing.T) {
	perm := Shuffle("quiz:2026-08-30:user-1", 12)
	require.Len(t, perm, 12)

	seen := make(map[int]bool, 12)
	for _, v := range perm {
		assert.False(t, seen[v], "duplicate index %d", v)
		seen[v] = true
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 12)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a := Shuffle("stable-seed", 20)
	b := Shuffle("stable-seed", 20)
	assert.Equal(t, a, b)

	c := Shuffle("other-seed", 20)
	assert.NotEqual(t, a, c)
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "2026-08-30:rune:u1", Compose("2026-08-30", "rune", "u1"))
}
