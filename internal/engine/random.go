package engine

import "golang.org/x/exp/rand"

// Rand is the randomness the engine draws from. Networked copies of a
// match share a seed so both draw the same sequence.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomPick draws a duel number uniformly from 1..4.
func RandomPick(rng Rand) int { return rng.Intn(MaxPick) + MinPick }

// randomDistinctPicks draws n different duel numbers.
func randomDistinctPicks(rng Rand, n int) []int {
	perm := rng.Perm(MaxPick)
	out := make([]int, n)
	for i := range out {
		out[i] = perm[i] + MinPick
	}
	return out
}
