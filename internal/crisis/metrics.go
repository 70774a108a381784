package crisis

// Metric bounds. Intel has no upper bound.
const (
	DefconMin = 1
	DefconMax = 5
	ScaleMin  = 0
	ScaleMax  = 100
)

// Field identifies a single metric within Metrics.
type Field int

const (
	// FieldUnspecified represents an invalid field value.
	FieldUnspecified Field = iota
	// FieldDefcon is proximity to war, 1 (war) to 5 (peace).
	FieldDefcon
	// FieldStability is domestic stability, 0 to 100.
	FieldStability
	// FieldSystemStatus is bunker system health, 0 to 100.
	FieldSystemStatus
	// FieldIntel is spendable intel assets, never negative.
	FieldIntel
	// FieldCorruption is the hidden hostility accumulator, 0 to 100.
	FieldCorruption
	// FieldWeaponProgress is hidden weapon program progress, 0 to 100.
	FieldWeaponProgress
	// FieldSecrecy is how contained the program remains, 0 to 100.
	FieldSecrecy
)

// String returns the snake_case field name used in events and storage.
func (f Field) String() string {
	switch f {
	case FieldDefcon:
		return "defcon"
	case FieldStability:
		return "stability"
	case FieldSystemStatus:
		return "system_status"
	case FieldIntel:
		return "intel"
	case FieldCorruption:
		return "corruption"
	case FieldWeaponProgress:
		return "weapon_progress"
	case FieldSecrecy:
		return "secrecy"
	default:
		return "unspecified"
	}
}

// TerminalState classifies whether the session has reached a boundary end.
type TerminalState int

const (
	// TerminalOngoing means no terminal boundary has been reached.
	TerminalOngoing TerminalState = iota
	// TerminalWar means DEFCON reached 1.
	TerminalWar
	// TerminalCoup means stability reached 0.
	TerminalCoup
	// TerminalSystemFailure means system status reached 0.
	TerminalSystemFailure
	// TerminalSecretRevealed means secrecy reached 0.
	TerminalSecretRevealed
)

// String returns the terminal state label.
func (t TerminalState) String() string {
	switch t {
	case TerminalOngoing:
		return "ONGOING"
	case TerminalWar:
		return "WAR"
	case TerminalCoup:
		return "COUP"
	case TerminalSystemFailure:
		return "SYSTEM_FAILURE"
	case TerminalSecretRevealed:
		return "SECRET_REVEALED"
	default:
		return "UNKNOWN"
	}
}

// Metrics holds every scalar quantity of the simulation plus turn
// bookkeeping. All mutation goes through ApplyDelta so that range invariants
// hold after every resolution.
type Metrics struct {
	Defcon         int
	Stability      int
	SystemStatus   int
	Intel          int
	Corruption     int
	WeaponProgress int
	Secrecy        int
	Turn           int
}

// NewMetrics returns the fixed session baseline.
func NewMetrics() Metrics {
	return Metrics{
		Defcon:         5,
		Stability:      70,
		SystemStatus:   100,
		Intel:          5,
		Corruption:     0,
		WeaponProgress: 0,
		Secrecy:        80,
		Turn:           0,
	}
}

// ApplyDelta adds amount to the named field and clamps it into range. It
// reports whether clamping occurred, which resolution uses to emit
// "no further effect" events.
func (m *Metrics) ApplyDelta(field Field, amount int) bool {
	switch field {
	case FieldDefcon:
		return applyClamped(&m.Defcon, amount, DefconMin, DefconMax)
	case FieldStability:
		return applyClamped(&m.Stability, amount, ScaleMin, ScaleMax)
	case FieldSystemStatus:
		return applyClamped(&m.SystemStatus, amount, ScaleMin, ScaleMax)
	case FieldIntel:
		before := m.Intel
		m.Intel += amount
		if m.Intel < 0 {
			m.Intel = 0
			return before != 0 || amount != 0
		}
		return false
	case FieldCorruption:
		return applyClamped(&m.Corruption, amount, ScaleMin, ScaleMax)
	case FieldWeaponProgress:
		return applyClamped(&m.WeaponProgress, amount, ScaleMin, ScaleMax)
	case FieldSecrecy:
		return applyClamped(&m.Secrecy, amount, ScaleMin, ScaleMax)
	default:
		return false
	}
}

// Terminal evaluates the boundary conditions. War wins ties: if several
// boundaries are crossed in the same turn the most severe is reported.
func (m Metrics) Terminal() TerminalState {
	switch {
	case m.Defcon <= DefconMin:
		return TerminalWar
	case m.Stability <= ScaleMin:
		return TerminalCoup
	case m.SystemStatus <= ScaleMin:
		return TerminalSystemFailure
	case m.Secrecy <= ScaleMin:
		return TerminalSecretRevealed
	default:
		return TerminalOngoing
	}
}

func applyClamped(target *int, amount, low, high int) bool {
	value := *target + amount
	if value < low {
		*target = low
		return true
	}
	if value > high {
		*target = high
		return true
	}
	*target = value
	return false
}
