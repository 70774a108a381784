package crisis

import (
	"fmt"
	"strings"
)

// AdvisorName identifies one of the three cabinet advisors.
type AdvisorName string

const (
	// AdvisorVance is the hawkish general. Prefers escalation.
	AdvisorVance AdvisorName = "Vance"
	// AdvisorDirectorK runs the intelligence directorate. Prefers audits.
	AdvisorDirectorK AdvisorName = "DirectorK"
	// AdvisorSterling is the diplomat. Prefers containment.
	AdvisorSterling AdvisorName = "Sterling"
)

// AdvisorNames returns the fixed advisor roster in canonical order.
func AdvisorNames() []AdvisorName {
	return []AdvisorName{AdvisorVance, AdvisorDirectorK, AdvisorSterling}
}

// Advisor is one cabinet member. Identity and preference are immutable;
// Suspicion is the player-visible evidence accumulated through traces and
// interrogations, distinct from the hidden ground truth held by the Oracle.
type Advisor struct {
	Name      AdvisorName
	Preferred DirectiveKind
	Suspicion int
}

// AdviceTag is the structured output of a consultation.
type AdviceTag struct {
	Advisor     AdvisorName
	Recommended DirectiveKind
	Confidence  string
}

// confidencePhrases are the fixed consultation phrasings. Index selection is
// an RNG draw, keeping replays byte-identical.
var confidencePhrases = []string{
	"I would stake my career on it.",
	"The signals all point the same way.",
	"It is not without risk, but it is the move.",
	"We have been here before. Trust the playbook.",
}

// Registry owns the three advisors and the advice/interrogation logic. It is
// the only consumer allowed to read the oracle's hidden identity, and only
// inside advice biasing.
//
// The oracle's identity never changes; neutralized records whether the mole
// has been taken off the board after a confirmed unmasking. A neutralized
// mole stops biasing advice and can no longer slip or be traced.
type Registry struct {
	advisors    []Advisor
	oracle      Oracle
	neutralized bool
}

// NewRegistry creates the fixed roster with zero revealed suspicion.
func NewRegistry(oracle Oracle) *Registry {
	return &Registry{
		advisors: []Advisor{
			{Name: AdvisorVance, Preferred: DirectiveEscalate},
			{Name: AdvisorDirectorK, Preferred: DirectiveInvestigate},
			{Name: AdvisorSterling, Preferred: DirectiveContain},
		},
		oracle: oracle,
	}
}

// Advisors returns a copy of the roster for presentation and persistence.
func (r *Registry) Advisors() []Advisor {
	out := make([]Advisor, len(r.advisors))
	copy(out, r.advisors)
	return out
}

// Lookup resolves a player-typed advisor reference case-insensitively.
func (r *Registry) Lookup(target string) (AdvisorName, bool) {
	needle := strings.ToLower(strings.TrimSpace(target))
	if needle == "" {
		return "", false
	}
	for _, advisor := range r.advisors {
		if strings.Contains(strings.ToLower(string(advisor.Name)), needle) {
			return advisor.Name, true
		}
	}
	return "", false
}

// Suspicion returns the revealed suspicion for an advisor, or 0 if unknown.
func (r *Registry) Suspicion(name AdvisorName) int {
	for _, advisor := range r.advisors {
		if advisor.Name == name {
			return advisor.Suspicion
		}
	}
	return 0
}

// SetSuspicion restores a persisted suspicion value, clamped into range.
func (r *Registry) SetSuspicion(name AdvisorName, value int) {
	for i := range r.advisors {
		if r.advisors[i].Name == name {
			r.advisors[i].Suspicion = clampScale(value)
		}
	}
}

// MoleConfirmed reports whether the mole's revealed suspicion has reached
// the unmasking threshold while they are still on the board. While true,
// the Execute and Turn reckoning directives are open.
func (r *Registry) MoleConfirmed(threshold int) bool {
	if r.neutralized {
		return false
	}
	return r.Suspicion(r.oracle.Mole()) >= threshold
}

// Neutralize takes the confirmed mole off the board and returns their name.
// The oracle identity is untouched; only the mole's active influence ends.
func (r *Registry) Neutralize() AdvisorName {
	r.neutralized = true
	return r.oracle.Mole()
}

// MoleNeutralized reports whether the mole has been executed or turned.
func (r *Registry) MoleNeutralized() bool {
	return r.neutralized
}

// SetMoleNeutralized restores the persisted neutralization state.
func (r *Registry) SetMoleNeutralized(neutralized bool) {
	r.neutralized = neutralized
}

// activeMole reports whether the named advisor is the mole and still acting
// as one.
func (r *Registry) activeMole(name AdvisorName) bool {
	return !r.neutralized && r.oracle.IsMole(name)
}

// Consult generates advice from the named advisor.
//
// A loyal advisor leans on their preference but defers to whatever the true
// metrics suggest is safest. The mole's advice is built to look exactly like
// that while steering toward the directives that feed the weapon and
// corruption tracks; the tell is the bias over many turns, never a single
// contradiction.
func (r *Registry) Consult(name AdvisorName, m Metrics, rng RNG) AdviceTag {
	advisor := r.find(name)

	var recommended DirectiveKind
	if r.activeMole(name) {
		recommended = r.moleRecommendation(advisor, m, rng)
	} else {
		recommended = r.loyalRecommendation(advisor, m, rng)
	}

	return AdviceTag{
		Advisor:     name,
		Recommended: recommended,
		Confidence:  confidencePhrases[rng.Intn(len(confidencePhrases))],
	}
}

// Interrogate questions the named advisor, mutating revealed suspicion.
// Intel affordability is the resolver's concern; this only rolls the outcome.
func (r *Registry) Interrogate(name AdvisorName, tuning Tuning, rng RNG) []Event {
	advisor := r.find(name)
	isMole := r.activeMole(name)

	chance := tuning.InterrogateBaseChance + float64(advisor.Suspicion)/200.0
	if isMole {
		chance += tuning.InterrogateSlipBonus
	}

	if rng.Float64() < chance {
		after := r.raise(name, tuning.InterrogateSuccessGain)
		events := []Event{{
			Type:    EventSuspicionChanged,
			Advisor: name,
			Message: fmt.Sprintf("%s cracks under questioning. Revealed suspicion now %d.", name, after),
		}}
		if isMole {
			events = append(events, Event{
				Type:    EventAdvisorSlip,
				Advisor: name,
				Message: fmt.Sprintf("%s references a cable you never circulated.", name),
			})
		}
		return events
	}

	after := r.raise(name, tuning.InterrogateFailureGain)
	events := []Event{{
		Type:    EventSuspicionChanged,
		Advisor: name,
		Message: fmt.Sprintf("%s holds firm. Revealed suspicion now %d.", name, after),
	}}

	// A botched interrogation sometimes smears a bystander, which keeps the
	// revealed numbers ambiguous evidence rather than ground truth.
	if rng.Float64() < tuning.FalseLeadChance {
		if innocent, ok := r.innocentOther(name, rng); ok {
			smeared := r.raise(innocent, tuning.FalseLeadGain)
			events = append(events, Event{
				Type:    EventSuspicionChanged,
				Advisor: innocent,
				Message: fmt.Sprintf("Intercepted chatter implicates %s. Revealed suspicion now %d.", innocent, smeared),
			})
		}
	}
	return events
}

func (r *Registry) loyalRecommendation(advisor Advisor, m Metrics, rng RNG) DirectiveKind {
	safest := safestDirective(m, advisor.Preferred)
	if safest != advisor.Preferred && rng.Float64() < 0.75 {
		return safest
	}
	return advisor.Preferred
}

func (r *Registry) moleRecommendation(advisor Advisor, m Metrics, rng RNG) DirectiveKind {
	// The mole pushes whichever hidden-track feeder currently looks
	// defensible: escalation while there is room above DEFCON 2, deeper
	// audits once escalation would look reckless.
	target := DirectiveInvestigate
	if m.Defcon >= 3 {
		target = DirectiveEscalate
	}

	// Cover behavior: echo the public preference often enough that the
	// advice stream stays plausible.
	coverChance := 0.3
	if advisor.Preferred == DirectiveEscalate || advisor.Preferred == DirectiveInvestigate {
		coverChance = 0.8
	}
	if rng.Float64() < coverChance {
		return advisor.Preferred
	}
	return target
}

// safestDirective derives what the true metrics actually call for.
func safestDirective(m Metrics, fallback DirectiveKind) DirectiveKind {
	switch {
	case m.Defcon <= 2:
		return DirectiveContain
	case m.Stability < 30 && m.Secrecy > 50:
		return DirectiveLeak
	case m.Stability < 30:
		return DirectiveContain
	case m.WeaponProgress > 70:
		return DirectiveInvestigate
	default:
		return fallback
	}
}

func (r *Registry) find(name AdvisorName) Advisor {
	for _, advisor := range r.advisors {
		if advisor.Name == name {
			return advisor
		}
	}
	return Advisor{Name: name}
}

func (r *Registry) raise(name AdvisorName, amount int) int {
	for i := range r.advisors {
		if r.advisors[i].Name == name {
			r.advisors[i].Suspicion = clampScale(r.advisors[i].Suspicion + amount)
			return r.advisors[i].Suspicion
		}
	}
	return 0
}

// innocentOther picks a uniformly random advisor that is neither the
// interrogated one nor the mole.
func (r *Registry) innocentOther(name AdvisorName, rng RNG) (AdvisorName, bool) {
	var candidates []AdvisorName
	for _, advisor := range r.advisors {
		if advisor.Name == name || r.oracle.IsMole(advisor.Name) {
			continue
		}
		candidates = append(candidates, advisor.Name)
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[rng.Intn(len(candidates))], true
}

func clampScale(value int) int {
	if value < ScaleMin {
		return ScaleMin
	}
	if value > ScaleMax {
		return ScaleMax
	}
	return value
}
