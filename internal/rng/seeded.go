package rng

import "math/rand"

// Seeded is a deterministic generator for simulations and tests. It is
// not safe for concurrent use.
type Seeded struct {
	r *rand.Rand
}

// NewSeeded returns a generator producing the same sequence for the
// same seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.r.Intn(n)
}
