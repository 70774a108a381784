// Package crisis implements the deterministic state-resolution engine for
// the Basilisk simulation.
//
// The engine is a pure function of (state, directive, random draw). Every
// probabilistic branch draws from an injected RNG, so identical seeds and
// directive sequences reproduce identical states and event lists. The
// package holds no ambient state: metrics, advisors, the mole identity, and
// the autonomy band are all owned by the caller and passed in explicitly.
package crisis
