package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericGenerate(t *testing.T) {
	gen := NewNumeric()

	for length := MinLength; length <= MaxLength; length++ {
		code, err := gen.Generate(length)
		require.NoError(t, err)
		require.Len(t, code, length)

		for _, r := range code {
			assert.GreaterOrEqual(t, r, '0')
			assert.LessOrEqual(t, r, '9')
		}
	}
}

func TestNumericGenerateInvalidLength(t *testing.T) {
	gen := NewNumeric()

	for _, length := range []int{-1, 0, MinLength - 1, MaxLength + 1, 100} {
		_, err := gen.Generate(length)
		assert.ErrorIs(t, err, ErrInvalidLength)
	}
}

func TestNumericGenerateIndependentDraws(t *testing.T) {
	gen := NewNumeric()

	// Two draws must not be derived from each other. Equality is possible but
	// across 100 pairs of 8-digit codes a collision on every pair is not.
	same := 0
	for range 100 {
		a, err := gen.Generate(8)
		require.NoError(t, err)
		b, err := gen.Generate(8)
		require.NoError(t, err)
		if a == b {
			same++
		}
	}

	assert.Less(t, same, 100)
}

func TestNumericGenerateDistributionSanity(t *testing.T) {
	gen := NewNumeric()

	counts := make(map[rune]int)
	for range 500 {
		code, err := gen.Generate(6)
		require.NoError(t, err)
		for _, r := range code {
			counts[r]++
		}
	}

	// 3000 digits across 10 buckets: every digit should appear at least once.
	require.Len(t, counts, 10)
	for d, n := range counts {
		assert.Positive(t, n, "digit %c never generated", d)
	}
}
