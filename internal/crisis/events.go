package crisis

// EventType identifies the type of an emitted resolution event.
type EventType string

const (
	// EventDirectiveApplied records the directive that actually resolved.
	EventDirectiveApplied EventType = "DIRECTIVE_APPLIED"
	// EventOverrideSubstituted records the Basilisk replacing the directive.
	EventOverrideSubstituted EventType = "OVERRIDE_SUBSTITUTED"
	// EventPurgeForced records a forced, amplified escalation during Purging.
	EventPurgeForced EventType = "PURGE_FORCED"
	// EventPurgeInterrupted records a mid-purge interrogation of the mole.
	EventPurgeInterrupted EventType = "PURGE_INTERRUPTED"
	// EventDirectiveResisted records the system dampening a directive.
	EventDirectiveResisted EventType = "DIRECTIVE_RESISTED"
	// EventNoFurtherEffect records a metric clamping at its boundary.
	EventNoFurtherEffect EventType = "NO_FURTHER_EFFECT"
	// EventAnomaly records a corruption threshold crossing.
	EventAnomaly EventType = "ANOMALY"
	// EventBandShift records the autonomy band changing.
	EventBandShift EventType = "BAND_SHIFT"
	// EventAdvice records a consulted advisor's recommendation.
	EventAdvice EventType = "ADVICE"
	// EventAdvisorSlip records an interrogated mole slipping.
	EventAdvisorSlip EventType = "ADVISOR_SLIP"
	// EventSuspicionChanged records revealed suspicion moving.
	EventSuspicionChanged EventType = "SUSPICION_CHANGED"
	// EventTraceLock records a successful signal trace.
	EventTraceLock EventType = "TRACE_LOCK"
	// EventTraceFailed records a trace with no signal to lock onto.
	EventTraceFailed EventType = "TRACE_FAILED"
	// EventCableDecrypted records a cable being decrypted.
	EventCableDecrypted EventType = "CABLE_DECRYPTED"
	// EventInsufficientIntel records an unaffordable directive.
	EventInsufficientIntel EventType = "INSUFFICIENT_INTEL"
	// EventInvalidTarget records a directive referencing an unknown target.
	EventInvalidTarget EventType = "INVALID_TARGET"
	// EventMoleConfirmed records revealed suspicion reaching the unmasking
	// threshold: the mole knows they are caught and a reckoning is open.
	EventMoleConfirmed EventType = "MOLE_CONFIRMED"
	// EventMoleExecuted records a confirmed mole being silenced.
	EventMoleExecuted EventType = "MOLE_EXECUTED"
	// EventMoleTurned records a confirmed mole being flipped into a
	// double agent.
	EventMoleTurned EventType = "MOLE_TURNED"
	// EventSessionTerminal records the session reaching a terminal boundary.
	EventSessionTerminal EventType = "SESSION_TERMINAL"
)

// Event is one immutable resolution event. Fields beyond Type and Message
// are populated only where meaningful for the type. Messages are fully
// determined by (state, directive, random draw), so replays of the same seed
// and directive sequence produce byte-identical event lists.
type Event struct {
	Type      EventType
	Message   string
	Directive DirectiveKind
	Advisor   AdvisorName
	Field     Field
	Severity  int
	Terminal  TerminalState
	Advice    *AdviceTag
}
