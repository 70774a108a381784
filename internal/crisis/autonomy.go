package crisis

import "fmt"

// Band is the autonomy override state layered on top of corruption.
type Band int

const (
	// BandDormant means the system executes directives faithfully.
	BandDormant Band = iota
	// BandWatching means the system quietly resists de-escalation.
	BandWatching
	// BandOverriding means the system may substitute directives.
	BandOverriding
	// BandPurging means the system forces amplified escalation every turn.
	BandPurging
)

// String returns the band label.
func (b Band) String() string {
	switch b {
	case BandDormant:
		return "DORMANT"
	case BandWatching:
		return "WATCHING"
	case BandOverriding:
		return "OVERRIDING"
	case BandPurging:
		return "PURGING"
	default:
		return "UNKNOWN"
	}
}

// BandFor derives the band from a corruption value. Transitions are
// level-triggered: the band is recomputed from current corruption every
// turn and carries no history of its own.
func BandFor(corruption int, tuning Tuning) Band {
	switch {
	case corruption >= tuning.PurgingThreshold:
		return BandPurging
	case corruption >= tuning.OverridingThreshold:
		return BandOverriding
	case corruption >= tuning.WatchingThreshold:
		return BandWatching
	default:
		return BandDormant
	}
}

// Interception is the outcome of the pre-resolution override check.
// Resolved is the directive that will actually be applied. Forced marks a
// Purging-band substitution, which amplifies effect magnitude downstream.
type Interception struct {
	Resolved  Directive
	Submitted Directive
	Replaced  bool
	Forced    bool
	Events    []Event
}

// Intercept runs the autonomy check on a submitted directive. Substitution
// never fails and is always reported; the player cannot prevent it after
// submission.
func Intercept(band Band, submitted Directive, tuning Tuning, rng RNG) Interception {
	result := Interception{Resolved: submitted, Submitted: submitted}

	switch band {
	case BandOverriding:
		if rng.Float64() >= tuning.OverrideChance {
			return result
		}
		substitute := DirectiveEscalate
		if rng.Intn(2) == 1 {
			substitute = DirectiveInvestigate
		}
		result.Resolved = Directive{Kind: substitute}
		result.Replaced = true
		result.Events = append(result.Events, Event{
			Type:      EventOverrideSubstituted,
			Directive: substitute,
			Message:   fmt.Sprintf("Command channel hijacked: %s replaced by %s.", submitted.Kind, substitute),
		})
	case BandPurging:
		result.Resolved = Directive{Kind: DirectiveEscalate}
		result.Replaced = submitted.Kind != DirectiveEscalate
		result.Forced = true
		result.Events = append(result.Events, Event{
			Type:      EventPurgeForced,
			Directive: DirectiveEscalate,
			Message:   "The system no longer accepts input. ESCALATE executed at full authority.",
		})
	}

	return result
}
