package random

// seedMix is the xorshift64* output multiplier.
const seedMix = 0x2545F4914F6CDD1D

// Source is a deterministic xorshift64* generator implementing rand.Source64.
//
// Unlike the sources in math/rand, its internal word is exposable through
// State and restorable through SetState, so persistence can record the exact
// stream position alongside the seed.
type Source struct {
	state uint64
}

// NewSource creates a Source from a seed. A zero seed is remapped because
// xorshift has an all-zero fixed point.
func NewSource(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the generator to the stream derived from seed.
func (s *Source) Seed(seed int64) {
	state := uint64(seed)
	if state == 0 {
		state = seedMix
	}
	s.state = state
}

// Uint64 returns the next value in the stream.
func (s *Source) Uint64() uint64 {
	x := s.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	s.state = x
	return x * seedMix
}

// Int63 returns a non-negative 63-bit value, as required by rand.Source.
func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// State returns the current stream position.
func (s *Source) State() uint64 {
	return s.state
}

// SetState restores a previously captured stream position. A zero state is
// remapped the same way Seed remaps a zero seed.
func (s *Source) SetState(state uint64) {
	if state == 0 {
		state = seedMix
	}
	s.state = state
}
