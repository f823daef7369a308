package grading

import "math/rand"

// ShuffleIndexes returns a permutation of [0, n) drawn from a generator
// seeded with the given value. The same seed always yields the same
// permutation, so a learner who reloads an attempt sees options in the
// same order they first got.
func ShuffleIndexes(n int, seed int64) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(n, func(i, j int) {
		indexes[i], indexes[j] = indexes[j], indexes[i]
	})
	return indexes
}

// DisplaySeed derives the shuffle seed for one question within one attempt.
func DisplaySeed(attemptID, questionID uint) int64 {
	return int64(attemptID)<<32 ^ int64(questionID)
}
