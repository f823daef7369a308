package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffleIndexes_Deterministic(t *testing.T) {
	first := ShuffleIndexes(32, 1234)
	second := ShuffleIndexes(32, 1234)

	assert.Equal(t, first, second, "same seed must give the same order")
}

func TestShuffleIndexes_IsPermutation(t *testing.T) {
	indexes := ShuffleIndexes(16, 99)

	seen := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 16)
		assert.False(t, seen[idx], "index %d appears twice", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, 16)
}

func TestShuffleIndexes_SeedChangesOrder(t *testing.T) {
	a := ShuffleIndexes(32, 1)
	b := ShuffleIndexes(32, 2)

	assert.NotEqual(t, a, b)
}

func TestShuffleIndexes_Empty(t *testing.T) {
	assert.Empty(t, ShuffleIndexes(0, 7))
}

func TestDisplaySeed_DistinguishesQuestions(t *testing.T) {
	assert.NotEqual(t, DisplaySeed(1, 2), DisplaySeed(1, 3))
	assert.NotEqual(t, DisplaySeed(1, 2), DisplaySeed(2, 2))
	assert.Equal(t, DisplaySeed(5, 9), DisplaySeed(5, 9))
}
