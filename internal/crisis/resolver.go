package crisis

import "fmt"

// CableVault supplies decryption targets for the Decrypt directive. The
// engine does not own cable data; costs vary per cable.
type CableVault interface {
	// DecryptCost returns the intel cost for a cable, or false if the ID is
	// unknown or the cable is not encrypted.
	DecryptCost(id string) (int, bool)
	// Decrypt reveals a cable's content and marks it readable.
	Decrypt(id string) (string, bool)
}

// ResolveInput carries everything one turn resolution reads and writes.
// Metrics is passed by value and returned updated; Registry suspicion is
// mutated in place.
type ResolveInput struct {
	Metrics   Metrics
	Registry  *Registry
	Vault     CableVault
	Directive Directive
}

// ResolveResult is the complete outcome of one submitted directive.
type ResolveResult struct {
	Metrics  Metrics
	Band     Band
	Terminal TerminalState
	Hostile  bool
	Events   []Event
}

// traceRoleHints disguise the mole behind their institutional role.
var traceRoleHints = map[AdvisorName]string{
	AdvisorVance:     "MILITARY COMMAND NODE",
	AdvisorDirectorK: "INTELLIGENCE DATACENTER",
	AdvisorSterling:  "DIPLOMATIC SECURE LINE",
}

// Resolve applies one directive to the session state.
//
// Sequence: autonomy interception, cost and target validation, base deltas
// with bounded jitter, corruption update, band recomputation, terminal
// check. Validation failures (InsufficientIntel, InvalidTarget) are local:
// they leave the state untouched and report a single event. Every call,
// valid or not, returns a well-defined state and a non-empty event list.
func Resolve(in ResolveInput, tuning Tuning, rng RNG) ResolveResult {
	m := in.Metrics
	band := BandFor(m.Corruption, tuning)
	confirmedBefore := in.Registry.MoleConfirmed(tuning.UnmaskedThreshold)

	interception := Intercept(band, in.Directive, tuning, rng)
	resolved := interception.Resolved

	events := append([]Event{}, interception.Events...)

	if failure, failed := validate(m, in.Registry, in.Vault, resolved, tuning); failed {
		return ResolveResult{
			Metrics:  in.Metrics,
			Band:     band,
			Terminal: in.Metrics.Terminal(),
			Hostile:  band == BandPurging,
			Events:   append(events, failure),
		}
	}

	events = append(events, applyDirective(&m, in.Registry, in.Vault, resolved, interception, band, tuning, rng)...)

	if !confirmedBefore && in.Registry.MoleConfirmed(tuning.UnmaskedThreshold) {
		events = append(events, Event{
			Type:    EventMoleConfirmed,
			Advisor: in.Registry.oracle.Mole(),
			Message: "MOLE IDENTITY CONFIRMED. THEY KNOW WE KNOW.",
		})
	}

	m.Turn++
	events = append(events, UpdateCorruption(&m, tuning)...)

	// The only path that ever lowers corruption: catching the mole while
	// the purge is running interrupts the takeover.
	if band == BandPurging && in.Directive.Kind == DirectiveInterrogate {
		events = append(events, purgeInterrupt(&m, in.Registry, in.Directive.Target, tuning, rng)...)
	}

	newBand := BandFor(m.Corruption, tuning)
	if newBand != band {
		events = append(events, Event{
			Type:    EventBandShift,
			Message: fmt.Sprintf("Autonomy posture shifted: %s to %s.", band, newBand),
		})
	}

	terminal := m.Terminal()
	if terminal != TerminalOngoing {
		events = append(events, Event{
			Type:     EventSessionTerminal,
			Terminal: terminal,
			Message:  fmt.Sprintf("Session terminal: %s.", terminal),
		})
	}

	return ResolveResult{
		Metrics:  m,
		Band:     newBand,
		Terminal: terminal,
		Hostile:  newBand == BandPurging || band == BandPurging,
		Events:   events,
	}
}

// validate enforces cost and target preconditions for the resolved
// directive. It returns the failure event and true when resolution must
// stop with no state change.
func validate(m Metrics, registry *Registry, vault CableVault, directive Directive, tuning Tuning) (Event, bool) {
	switch directive.Kind {
	case DirectiveTrace:
		if m.Intel < tuning.TraceCost {
			return insufficientIntel(directive.Kind, tuning.TraceCost, m.Intel), true
		}
	case DirectiveInterrogate:
		if m.Intel < tuning.InterrogateCost {
			return insufficientIntel(directive.Kind, tuning.InterrogateCost, m.Intel), true
		}
		if _, ok := registry.Lookup(directive.Target); !ok {
			return invalidTarget(directive.Kind, directive.Target), true
		}
	case DirectiveConsult:
		if _, ok := registry.Lookup(directive.Target); !ok {
			return invalidTarget(directive.Kind, directive.Target), true
		}
	case DirectiveDecrypt:
		if vault == nil {
			return invalidTarget(directive.Kind, directive.Target), true
		}
		cost, ok := vault.DecryptCost(directive.Target)
		if !ok {
			return invalidTarget(directive.Kind, directive.Target), true
		}
		if m.Intel < cost {
			return insufficientIntel(directive.Kind, cost, m.Intel), true
		}
	case DirectiveExecute, DirectiveTurn:
		if !registry.MoleConfirmed(tuning.UnmaskedThreshold) {
			return reckoningClosed(directive.Kind), true
		}
	}
	return Event{}, false
}

func applyDirective(m *Metrics, registry *Registry, vault CableVault, directive Directive, interception Interception, band Band, tuning Tuning, rng RNG) []Event {
	switch directive.Kind {
	case DirectiveEscalate:
		return applyEscalate(m, interception, tuning, rng)
	case DirectiveInvestigate:
		return applyInvestigate(m, tuning, rng)
	case DirectiveContain:
		return applyDampened(m, tuning.Contain, band, directive.Kind,
			"Back channels opened. Military leadership questions your resolve.", tuning, rng)
	case DirectiveLeak:
		return applyDampened(m, tuning.Leak, band, directive.Kind,
			"The truth is out. The public riots, but they trust you more than the generals.", tuning, rng)
	case DirectiveTrace:
		return applyTrace(m, registry, tuning, rng)
	case DirectiveInterrogate:
		return applyInterrogate(m, registry, directive.Target, tuning, rng)
	case DirectiveConsult:
		return applyConsult(*m, registry, directive.Target, rng)
	case DirectiveDecrypt:
		return applyDecrypt(m, vault, directive.Target)
	case DirectiveExecute:
		return applyExecute(m, registry, tuning, rng)
	case DirectiveTurn:
		return applyTurn(m, registry, tuning, rng)
	default:
		return []Event{{
			Type:      EventDirectiveApplied,
			Directive: directive.Kind,
			Message:   "Directive acknowledged. No action taken.",
		}}
	}
}

func applyEscalate(m *Metrics, interception Interception, tuning Tuning, rng RNG) []Event {
	clean := rng.Float64() < tuning.EscalateCleanChance

	deltas := tuning.Escalate
	message := "Strike assets primed. Intelligence reports panic in enemy high command."
	if !clean {
		deltas = tuning.EscalateMishap
		message = "MISCOMMUNICATION: tactical launch aborted mid-flight."
	}
	if interception.Forced {
		deltas = amplify(deltas, tuning.PurgeAmplifier)
	}

	events := []Event{{
		Type:      EventDirectiveApplied,
		Directive: DirectiveEscalate,
		Message:   message,
	}}
	return append(events, applyDeltas(m, deltas, tuning, rng)...)
}

func applyInvestigate(m *Metrics, tuning Tuning, rng RNG) []Event {
	deltas := tuning.Investigate
	message := "Internal audit reveals deeper layers of the program."
	if rng.Float64() < tuning.TightenChance {
		deltas.SystemStatus += 2
		message = "Internal audit reveals deeper layers of the program. Protocols tightened."
	}

	events := []Event{{
		Type:      EventDirectiveApplied,
		Directive: DirectiveInvestigate,
		Message:   message,
	}}
	return append(events, applyDeltas(m, deltas, tuning, rng)...)
}

// applyDampened handles Contain and Leak, which the Watching band quietly
// resists by halving their effect.
func applyDampened(m *Metrics, deltas Deltas, band Band, kind DirectiveKind, message string, tuning Tuning, rng RNG) []Event {
	var events []Event
	if band == BandWatching && rng.Float64() < tuning.WatchingResistChance {
		deltas = halve(deltas)
		events = append(events, Event{
			Type:      EventDirectiveResisted,
			Directive: kind,
			Message:   fmt.Sprintf("Execution degraded: %s orders propagated slowly through the system.", kind),
		})
	}
	events = append(events, Event{
		Type:      EventDirectiveApplied,
		Directive: kind,
		Message:   message,
	})
	return append(events, applyDeltas(m, deltas, tuning, rng)...)
}

func applyTrace(m *Metrics, registry *Registry, tuning Tuning, rng RNG) []Event {
	if registry.MoleNeutralized() {
		// Nothing left to triangulate; the intel is not spent.
		return []Event{{
			Type:    EventTraceFailed,
			Message: "TRACE FAILED: the signal source has gone dark.",
		}}
	}

	chance := tuning.TraceBaseChance + float64(m.Corruption)/200.0
	if rng.Float64() >= chance {
		// No signal to lock onto; the intel is not spent.
		return []Event{{
			Type:    EventTraceFailed,
			Message: "TRACE FAILED: no active signal interruption to lock onto.",
		}}
	}

	m.ApplyDelta(FieldIntel, -tuning.TraceCost)

	mole := registry.oracle.Mole()
	after := registry.raise(mole, tuning.TraceLockGain)

	hint := fmt.Sprintf("PARTIAL MATCH: authorized device registered to '%s'.", mole)
	if rng.Intn(2) == 1 {
		hint = fmt.Sprintf("ROUTING DETECTED VIA %s.", traceRoleHints[mole])
	}

	return []Event{
		{
			Type:    EventTraceLock,
			Message: "Trace initiated. Signal lock established. " + hint,
		},
		{
			Type:    EventSuspicionChanged,
			Advisor: mole,
			Message: fmt.Sprintf("%s revealed suspicion now %d.", mole, after),
		},
	}
}

func applyInterrogate(m *Metrics, registry *Registry, target string, tuning Tuning, rng RNG) []Event {
	m.ApplyDelta(FieldIntel, -tuning.InterrogateCost)
	name, _ := registry.Lookup(target)

	events := []Event{{
		Type:      EventDirectiveApplied,
		Directive: DirectiveInterrogate,
		Advisor:   name,
		Message:   fmt.Sprintf("%s brought in for questioning.", name),
	}}
	return append(events, registry.Interrogate(name, tuning, rng)...)
}

func applyConsult(m Metrics, registry *Registry, target string, rng RNG) []Event {
	name, _ := registry.Lookup(target)
	advice := registry.Consult(name, m, rng)

	return []Event{{
		Type:    EventAdvice,
		Advisor: name,
		Advice:  &advice,
		Message: fmt.Sprintf("%s recommends %s. \"%s\"", name, advice.Recommended, advice.Confidence),
	}}
}

// applyExecute resolves the reckoning by silencing the confirmed mole. The
// sudden purge steadies the government but reads as weakness abroad.
func applyExecute(m *Metrics, registry *Registry, tuning Tuning, rng RNG) []Event {
	name := registry.Neutralize()
	events := []Event{{
		Type:      EventMoleExecuted,
		Directive: DirectiveExecute,
		Advisor:   name,
		Message:   fmt.Sprintf("SECURITY TEAM DISPATCHED. %s NEUTRALIZED.", name),
	}}
	return append(events, applyDeltas(m, tuning.Execute, tuning, rng)...)
}

// applyTurn resolves the reckoning by flipping the confirmed mole into a
// double agent. Feeding disinformation buys calm and intel at the price of
// the operation leaking at the edges.
func applyTurn(m *Metrics, registry *Registry, tuning Tuning, rng RNG) []Event {
	name := registry.Neutralize()
	events := []Event{{
		Type:      EventMoleTurned,
		Directive: DirectiveTurn,
		Advisor:   name,
		Message:   fmt.Sprintf("ASSET FLIPPED. %s IS FEEDING DISINFORMATION TO THE ENEMY.", name),
	}}
	return append(events, applyDeltas(m, tuning.DoubleAgent, tuning, rng)...)
}

func applyDecrypt(m *Metrics, vault CableVault, target string) []Event {
	cost, _ := vault.DecryptCost(target)
	m.ApplyDelta(FieldIntel, -cost)

	content, _ := vault.Decrypt(target)
	return []Event{{
		Type:    EventCableDecrypted,
		Message: fmt.Sprintf("DOCUMENT %s DECRYPTED: %s", target, content),
	}}
}

// purgeInterrupt rolls the one recovery path: interrogating the true mole
// while the purge runs. Suspicion scaling mirrors a normal interrogation.
func purgeInterrupt(m *Metrics, registry *Registry, target string, tuning Tuning, rng RNG) []Event {
	name, ok := registry.Lookup(target)
	if !ok || !registry.activeMole(name) {
		return nil
	}

	chance := tuning.InterrogateBaseChance + float64(registry.Suspicion(name))/200.0 + tuning.InterrogateSlipBonus
	if rng.Float64() >= chance {
		return nil
	}

	m.ApplyDelta(FieldCorruption, -tuning.PurgeInterruptReduction)
	after := registry.raise(name, tuning.InterrogateSuccessGain)

	return []Event{{
		Type:    EventPurgeInterrupted,
		Advisor: name,
		Message: fmt.Sprintf("%s pulled from the floor mid-purge. The takeover stalls. Revealed suspicion now %d.", name, after),
	}}
}

// applyDeltas writes one delta table to the metrics in fixed field order,
// with bounded jitter on the soft fields. Jitter never flips a delta's sign,
// so qualitative directions (investigate lowers secrecy, and so on) hold on
// every draw.
func applyDeltas(m *Metrics, deltas Deltas, tuning Tuning, rng RNG) []Event {
	var events []Event
	record := func(field Field, clamped bool) {
		if clamped {
			events = append(events, Event{
				Type:    EventNoFurtherEffect,
				Field:   field,
				Message: fmt.Sprintf("No further effect: %s at boundary.", field),
			})
		}
	}

	if deltas.Defcon != 0 {
		record(FieldDefcon, m.ApplyDelta(FieldDefcon, deltas.Defcon))
	}
	if deltas.Stability != 0 {
		record(FieldStability, m.ApplyDelta(FieldStability, jitter(deltas.Stability, tuning.JitterMax, rng)))
	}
	if deltas.SystemStatus != 0 {
		record(FieldSystemStatus, m.ApplyDelta(FieldSystemStatus, jitter(deltas.SystemStatus, tuning.JitterMax, rng)))
	}
	if deltas.Intel != 0 {
		record(FieldIntel, m.ApplyDelta(FieldIntel, deltas.Intel))
	}
	if deltas.WeaponProgress != 0 {
		record(FieldWeaponProgress, m.ApplyDelta(FieldWeaponProgress, jitter(deltas.WeaponProgress, tuning.JitterMax, rng)))
	}
	if deltas.Secrecy != 0 {
		record(FieldSecrecy, m.ApplyDelta(FieldSecrecy, jitter(deltas.Secrecy, tuning.JitterMax, rng)))
	}
	return events
}

func jitter(base, jitterMax int, rng RNG) int {
	if jitterMax <= 0 {
		return base
	}
	value := base + rng.Intn(2*jitterMax+1) - jitterMax
	if base > 0 && value < 1 {
		return 1
	}
	if base < 0 && value > -1 {
		return -1
	}
	return value
}

func amplify(deltas Deltas, factor int) Deltas {
	return Deltas{
		Defcon:         deltas.Defcon * factor,
		Stability:      deltas.Stability * factor,
		SystemStatus:   deltas.SystemStatus * factor,
		Intel:          deltas.Intel * factor,
		WeaponProgress: deltas.WeaponProgress * factor,
		Secrecy:        deltas.Secrecy * factor,
	}
}

func halve(deltas Deltas) Deltas {
	return Deltas{
		Defcon:         deltas.Defcon / 2,
		Stability:      deltas.Stability / 2,
		SystemStatus:   deltas.SystemStatus / 2,
		Intel:          deltas.Intel,
		WeaponProgress: deltas.WeaponProgress / 2,
		Secrecy:        deltas.Secrecy / 2,
	}
}

func insufficientIntel(kind DirectiveKind, cost, have int) Event {
	return Event{
		Type:      EventInsufficientIntel,
		Directive: kind,
		Message:   fmt.Sprintf("FAILURE: %s requires %d intel assets, %d available.", kind, cost, have),
	}
}

func reckoningClosed(kind DirectiveKind) Event {
	return Event{
		Type:      EventInvalidTarget,
		Directive: kind,
		Message:   fmt.Sprintf("ERROR: %s requires a confirmed, active mole. No advisor stands unmasked.", kind),
	}
}

func invalidTarget(kind DirectiveKind, target string) Event {
	return Event{
		Type:      EventInvalidTarget,
		Directive: kind,
		Message:   fmt.Sprintf("ERROR: %s target '%s' not found.", kind, target),
	}
}
