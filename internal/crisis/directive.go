package crisis

import "strings"

// DirectiveKind identifies a player (or Basilisk-substituted) order.
type DirectiveKind int

const (
	// DirectiveUnspecified represents an invalid directive value.
	DirectiveUnspecified DirectiveKind = iota
	// DirectiveInvestigate audits the weapon program. Lowers secrecy.
	DirectiveInvestigate
	// DirectiveContain pursues de-escalation through back channels.
	DirectiveContain
	// DirectiveEscalate raises military readiness.
	DirectiveEscalate
	// DirectiveLeak releases classified material to the public.
	DirectiveLeak
	// DirectiveDecrypt decrypts one pending cable. Requires a cable ID.
	DirectiveDecrypt
	// DirectiveTrace attempts to triangulate the mole's signal.
	DirectiveTrace
	// DirectiveInterrogate questions one advisor. Requires an advisor name.
	DirectiveInterrogate
	// DirectiveConsult requests advice from one advisor.
	DirectiveConsult
	// DirectiveExecute silences a confirmed mole. Only valid after the
	// mole's revealed suspicion reaches the unmasking threshold.
	DirectiveExecute
	// DirectiveTurn flips a confirmed mole into a double agent. Only valid
	// after the mole's revealed suspicion reaches the unmasking threshold.
	DirectiveTurn
)

// String returns the directive label used in events.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveInvestigate:
		return "INVESTIGATE"
	case DirectiveContain:
		return "CONTAIN"
	case DirectiveEscalate:
		return "ESCALATE"
	case DirectiveLeak:
		return "LEAK"
	case DirectiveDecrypt:
		return "DECRYPT"
	case DirectiveTrace:
		return "TRACE"
	case DirectiveInterrogate:
		return "INTERROGATE"
	case DirectiveConsult:
		return "CONSULT"
	case DirectiveExecute:
		return "EXECUTE"
	case DirectiveTurn:
		return "TURN"
	default:
		return "UNSPECIFIED"
	}
}

// IsValid reports whether the directive kind is supported.
func (k DirectiveKind) IsValid() bool {
	return k > DirectiveUnspecified && k <= DirectiveTurn
}

// KindFromString parses a directive label. It accepts canonical labels
// case-insensitively plus the console shorthand; unknown input maps to
// DirectiveUnspecified.
func KindFromString(value string) DirectiveKind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "investigate", "inv":
		return DirectiveInvestigate
	case "contain", "con":
		return DirectiveContain
	case "escalate", "esc":
		return DirectiveEscalate
	case "leak":
		return DirectiveLeak
	case "decrypt", "dec":
		return DirectiveDecrypt
	case "trace", "tr":
		return DirectiveTrace
	case "interrogate", "int":
		return DirectiveInterrogate
	case "consult", "ask":
		return DirectiveConsult
	case "execute", "exec":
		return DirectiveExecute
	case "turn", "flip":
		return DirectiveTurn
	default:
		return DirectiveUnspecified
	}
}

// Directive is one parsed player order. Target carries the advisor name for
// Interrogate/Consult and the cable ID for Decrypt; it is empty otherwise.
type Directive struct {
	Kind   DirectiveKind
	Target string
}

// NeedsTarget reports whether the directive kind requires a target.
func (k DirectiveKind) NeedsTarget() bool {
	switch k {
	case DirectiveDecrypt, DirectiveInterrogate, DirectiveConsult:
		return true
	default:
		return false
	}
}
