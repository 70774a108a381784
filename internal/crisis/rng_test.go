package crisis

import (
	"math/rand"

	"github.com/louisbranch/basilisk/internal/random"
)

// stubRNG feeds scripted values to force specific branches. Exhausted
// Float64 draws return 0.99 (chance rolls fail) and exhausted Intn draws
// return n/2 (jitter of zero).
type stubRNG struct {
	floats []float64
	ints   []int
}

func (s *stubRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *stubRNG) Intn(n int) int {
	if len(s.ints) == 0 {
		return n / 2
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func newSeededRNG(seed int64) *rand.Rand {
	return rand.New(random.NewSource(seed))
}
