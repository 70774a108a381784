package crisis

// Oracle holds the hidden mole identity. The mole is chosen exactly once at
// session creation and never re-rolled; IsMole is a pure lookup thereafter.
// Only the advisor registry's biasing logic reads the identity directly.
type Oracle struct {
	mole AdvisorName
}

// SelectMole picks the mole uniformly among the three advisors. The choice
// is deterministic for a given RNG stream position, which makes sessions
// reproducible from their seed.
func SelectMole(rng RNG) Oracle {
	names := AdvisorNames()
	return Oracle{mole: names[rng.Intn(len(names))]}
}

// RestoreOracle rebuilds an oracle from a persisted mole identity.
func RestoreOracle(mole AdvisorName) Oracle {
	return Oracle{mole: mole}
}

// IsMole reports whether the named advisor is the mole.
func (o Oracle) IsMole(name AdvisorName) bool {
	return o.mole == name
}

// Mole returns the hidden identity. Callers outside persistence and the
// registry's advice biasing must not branch on it.
func (o Oracle) Mole() AdvisorName {
	return o.mole
}
