package game

import "math/rand/v2"

// defaultSource draws from the process-wide generator.
type defaultSource struct{}

func (defaultSource) IntN(n int) int { return rand.IntN(n) }

// NewRand returns a seeded source, for reproducible games in tests and
// demos.
func NewRand(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
