package rng

// Generator produces random numbers for deck shuffles and bot play
type Generator interface {
	// Intn returns a random number in [0, n)
	Intn(n int) int
}
