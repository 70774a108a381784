// Package cable generates the per-turn intelligence traffic the player
// reads: cables, memos, intercepts, leaks, and advisor messages. Content is
// derived from the true simulation state distorted by per-cable reliability,
// so the feed hints at the hidden tracks without ever printing them.
//
// The package holds no game rules. The engine consumes it only through its
// vault, which answers decrypt cost lookups and reveals content.
package cable

import (
	"fmt"

	"github.com/louisbranch/basilisk/internal/crisis"
)

// Type classifies a cable. Weights in the generator make advisor messages
// and routine traffic common and anonymous leaks rare.
type Type string

const (
	TypeIntelligenceCable Type = "INTELLIGENCE_CABLE"
	TypeInternalMemo      Type = "INTERNAL_MEMO"
	TypeBudgetAnomaly     Type = "BUDGET_ANOMALY"
	TypeForeignIntercept  Type = "FOREIGN_INTERCEPT"
	TypeAnonymousLeak     Type = "ANONYMOUS_LEAK"
	TypeAdvisorMessage    Type = "ADVISOR_MESSAGE"
)

// Cable is one generated document. Reliability is how faithfully the content
// reflects the true state; low-reliability traffic exaggerates or understates.
type Cable struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	Clearance   string  `json:"clearance"`
	Timestamp   string  `json:"timestamp"`
	Content     string  `json:"content"`
	Encrypted   bool    `json:"encrypted"`
	DecryptCost int     `json:"decrypt_cost,omitempty"`
	Reliability float64 `json:"reliability"`
}

// GenerateBatch produces count cables for one turn. All randomness comes
// from the shared engine RNG, so cable traffic replays identically with the
// session seed. At least one cable per non-empty batch carries encrypted
// crucial intel, keeping Decrypt relevant every turn.
func GenerateBatch(m crisis.Metrics, count, turn int, rng crisis.RNG) []Cable {
	cables := make([]Cable, 0, count)
	for i := 0; i < count; i++ {
		cables = append(cables, generate(m, turn, rng))
	}

	encrypted := false
	for _, c := range cables {
		if c.Encrypted {
			encrypted = true
			break
		}
	}
	if !encrypted && len(cables) > 0 {
		cables[0].Encrypted = true
		cables[0].DecryptCost = decryptCost(turn)
		cables[0].Content = crucialIntel(m, rng)
	}

	return cables
}

func generate(m crisis.Metrics, turn int, rng crisis.RNG) Cable {
	kind := rollType(rng)
	reliability := 0.3 + rng.Float64()*0.65
	id := fmt.Sprintf("DOC-%04X", rng.Intn(0x10000))

	// Advisor messages and leaks arrive in the clear; everything else gets
	// harder to read as the crisis deepens.
	encrypted := false
	if kind != TypeAnonymousLeak && kind != TypeAdvisorMessage {
		encrypted = rng.Float64() < encryptionChance(turn)
	}

	var content string
	switch {
	case encrypted:
		content = crucialIntel(m, rng)
	case kind == TypeAdvisorMessage:
		content = advisorContent(m, rng)
	case rng.Float64() < 0.15:
		if rng.Float64() < 0.5 {
			id = "SIGNAL-???"
			content = numbersStation(rng)
		} else {
			content = ghostMessage(m, rng)
		}
	default:
		content = plainContent(kind, m, reliability, rng)
	}

	cost := 0
	if encrypted {
		cost = decryptCost(turn)
	}

	return Cable{
		ID:          id,
		Type:        kind,
		Clearance:   clearance(kind),
		Timestamp:   timestamp(rng),
		Content:     content,
		Encrypted:   encrypted,
		DecryptCost: cost,
		Reliability: reliability,
	}
}

func rollType(rng crisis.RNG) Type {
	roll := rng.Intn(100)
	switch {
	case roll < 20:
		return TypeAdvisorMessage
	case roll < 40:
		return TypeIntelligenceCable
	case roll < 60:
		return TypeInternalMemo
	case roll < 75:
		return TypeForeignIntercept
	case roll < 90:
		return TypeBudgetAnomaly
	default:
		return TypeAnonymousLeak
	}
}

func encryptionChance(turn int) float64 {
	switch {
	case turn <= 1:
		return 0.0
	case turn <= 4:
		return 0.3
	case turn <= 8:
		return 0.5
	default:
		return 0.8
	}
}

// decryptCost scales with the turn the cable was generated on, so early
// cables stay affordable while late traffic forces triage.
func decryptCost(turn int) int {
	switch {
	case turn <= 4:
		return 1
	case turn <= 8:
		return 2
	default:
		return 3
	}
}

func clearance(kind Type) string {
	switch kind {
	case TypeBudgetAnomaly:
		return "CONFIDENTIAL"
	case TypeAnonymousLeak:
		return "UNVERIFIED"
	case TypeAdvisorMessage:
		return "EYES ONLY"
	default:
		return "TOP SECRET"
	}
}

func timestamp(rng crisis.RNG) string {
	return fmt.Sprintf("198%d-1%d-%02d %02d:%02dZ",
		rng.Intn(9), rng.Intn(3), 1+rng.Intn(27), rng.Intn(23), rng.Intn(59))
}

func plainContent(kind Type, m crisis.Metrics, reliability float64, rng crisis.RNG) string {
	switch kind {
	case TypeIntelligenceCable:
		return cableContent(m, reliability, rng)
	case TypeInternalMemo:
		return memoContent(m, rng)
	case TypeBudgetAnomaly:
		return budgetContent(rng)
	case TypeForeignIntercept:
		return interceptContent(m, reliability, rng)
	case TypeAnonymousLeak:
		return leakContent(m)
	default:
		return advisorContent(m, rng)
	}
}

// crucialIntel is what encrypted cables hide: actionable reads on the true
// state, worth the intel spent decrypting.
func crucialIntel(m crisis.Metrics, rng crisis.RNG) string {
	switch roll := rng.Intn(10); {
	case roll < 3:
		if m.Defcon <= 2 {
			return "ANALYSIS: ENEMY MOBILIZATION IS GENUINE. PREEMPTIVE STRIKE RECOMMENDED (ESCALATE)."
		}
		return "ANALYSIS: ENEMY POSTURING IS BLUFF. DO NOT PROVOKE (CONTAIN)."
	case roll < 6:
		if m.Stability < 40 {
			return "SURVEILLANCE: GENERAL STAFF DISCUSSING COUP. SHOW STRENGTH OR FACE REMOVAL."
		}
		return "POLLS: PUBLIC TRUST ERODING. TRANSPARENCY REQUIRED (LEAK)."
	case roll < 8:
		if m.WeaponProgress > 60 {
			return "PROJECT BASILISK: CONTAINMENT FAILING. SUBJECT IS REWRITING FIREWALLS. (INVESTIGATE)."
		}
		return "R&D: BREAKTHROUGH IMMINENT. WE NEED MORE DATA. (INVESTIGATE)."
	default:
		return "EYES ONLY: THE PRESIDENT IS A DOPPELGANGER."
	}
}

func advisorContent(m crisis.Metrics, rng crisis.RNG) string {
	names := crisis.AdvisorNames()
	name := names[rng.Intn(len(names))]

	var msg string
	switch name {
	case crisis.AdvisorVance:
		if m.Defcon <= 3 {
			msg = "The enemy understands only strength. We must demonstrate capacity."
		} else {
			msg = "Our readiness is slipping. We should run a 'drill' near the border."
		}
	case crisis.AdvisorDirectorK:
		if m.Secrecy < 40 {
			msg = "Too many eyes on us. We need to go dark to make progress."
		} else {
			msg = "The data streams are noisy. I recommend a deeper audit of the intercepts."
		}
	default:
		if m.Defcon <= 2 {
			msg = "They are terrified. One wrong move and they launch. We must talk."
		} else {
			msg = "We can buy time with concessions. It's cheaper than war."
		}
	}

	return fmt.Sprintf("FROM: %s // %q", name, msg)
}

func numbersStation(rng crisis.RNG) string {
	s := "BROADCAST DETECTED: "
	for i := 0; i < 6; i++ {
		s += fmt.Sprintf("%02d ", rng.Intn(100))
	}
	return s + "... [REPEATING]"
}

func ghostMessage(m crisis.Metrics, rng crisis.RNG) string {
	if m.WeaponProgress <= 50 {
		return "MAINTENANCE: STRANGE VIBRATIONS REPORTED IN SUB-BASEMENT LEVELS."
	}
	switch rng.Intn(4) {
	case 0:
		return "SYSTEM ALERT: UNKNOWN PROCESS 'BASILISK' REQUESTING ROOT ACCESS."
	case 1:
		return "LOG: BIOMETRIC SCANNERS DETECTING PULSE IN EMPTY CONTAINMENT CHAMBER."
	case 2:
		return "ERROR: POWER SURGE IN SECTOR 7. PATTERN MATCHES HUMAN BRAINWAVES."
	default:
		return "MESSAGE: 'I AM AWAKE. ARE YOU?'"
	}
}

func cableContent(m crisis.Metrics, reliability float64, rng crisis.RNG) string {
	tension := float64(crisis.DefconMax-m.Defcon) / float64(crisis.DefconMax-crisis.DefconMin)
	perceived := tension * (1.0 + (rng.Float64()-0.5)*(1.0-reliability))

	switch {
	case perceived > 0.7:
		return "FLASH: MASSIVE TROOP MOVEMENTS DETECTED NEAR BORDER SECTOR 4. SATELLITE IMAGERY INCONCLUSIVE BUT HEAT SIGNATURES SPIKING."
	case perceived > 0.4:
		return "ROUTINE: INCREASED RADIO CHATTER OBSERVED. PATTERNS MATCH PRE-EXERCISE PROTOCOLS."
	default:
		return "CALM: NO SIGNIFICANT ACTIVITY TO REPORT. STATION CHIEF REQUESTS ADDITIONAL SUPPLIES."
	}
}

func memoContent(m crisis.Metrics, rng crisis.RNG) string {
	if rng.Float64() < 0.3+float64(m.WeaponProgress)/200.0 {
		return "RE: PROJECT BASILISK. ENERGY CONSUMPTION EXCEEDING GRID CAPACITIES IN SECTOR 7. COVER STORY 'INDUSTRIAL ACCIDENT' PREPARED."
	}
	return "ADMIN: DEPARTMENTAL RESTRUCTURING POSTPONED DUE TO SECURITY CONCERNS."
}

func budgetContent(rng crisis.RNG) string {
	cost := 50 + rng.Intn(450)
	return fmt.Sprintf("AUDIT FLAG: $%dM UNACCOUNTED FOR IN 'AGRICULTURAL SUBSIDIES'. TRACED TO SHELL COMPANY 'ORION LOGISTICS'.", cost)
}

func interceptContent(m crisis.Metrics, reliability float64, rng crisis.RNG) string {
	fear := float64(crisis.DefconMax-m.Defcon) / float64(crisis.DefconMax-crisis.DefconMin)
	perceived := fear * (1.0 + (rng.Float64()-0.5)*(1.0-reliability))

	if perceived > 0.6 {
		return "DECRYPTED: \"...THEY ARE PREPARING A STRIKE. WE MUST BE READY TO PREEMPT. THE SILOS ARE OPENING...\""
	}
	return "DECRYPTED: \"...ECONOMIC FORECASTS LOOK GRIM. WE CANNOT AFFORD ANOTHER ESCALATION...\""
}

func leakContent(m crisis.Metrics) string {
	if m.Secrecy > 70 {
		return "WHISTLEBLOWER: \"THE GOVERNMENT IS LYING ABOUT THE SCOPE OF THE PROGRAM. IT'S NOT DEFENSIVE.\""
	}
	return "RUMOR MILL: \"SCIENTISTS DISAPPEARING FROM ACADEMIA. WHERE ARE THEY GOING?\""
}
