package crisis

// RNG is the random source every probabilistic branch draws from. *rand.Rand
// satisfies it; tests substitute fixed-draw stubs to force branches.
//
// Draw order within a resolution is part of the engine contract: it is fixed
// by code path, never by map iteration or goroutine timing, so a given seed
// replays identically.
type RNG interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}
