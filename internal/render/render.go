// Package render formats engine outputs for a terminal: the status panel,
// cable traffic, the event feed, and end-of-session banners. It reads state
// and produces strings; no game rules live here.
//
// Only the public metrics are ever rendered. Corruption, weapon progress,
// and secrecy stay hidden; the player infers them from cables and anomalies.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/louisbranch/basilisk/internal/cable"
	"github.com/louisbranch/basilisk/internal/crisis"
	"github.com/louisbranch/basilisk/internal/session/domain"
)

const suspicionBarWidth = 10

// Renderer formats simulation state with a fixed style set.
type Renderer struct {
	styles Styles
}

// New returns a renderer with the default styling.
func New() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// StatusPanel renders the player-visible state: public metrics, advisor
// suspicion bars, and the hostile-takeover alert once the purge has run.
func (r *Renderer) StatusPanel(m crisis.Metrics, advisors []crisis.Advisor, hostile bool) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(fmt.Sprintf("── SITUATION BOARD · TURN %d ──", m.Turn)))
	b.WriteString("\n")

	defconStyle := r.styles.Value
	if m.Defcon <= 2 {
		defconStyle = r.styles.Alert
	}
	rows := []string{
		r.metricRow("DEFCON", defconStyle.Render(fmt.Sprintf("%d", m.Defcon))),
		r.metricRow("STABILITY", r.gauge(m.Stability)),
		r.metricRow("SYSTEMS", r.gauge(m.SystemStatus)),
		r.metricRow("INTEL ASSETS", r.styles.Value.Render(fmt.Sprintf("%d", m.Intel))),
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Label.Render("CABINET"))
	b.WriteString("\n")
	for _, advisor := range advisors {
		bar := suspicionBar(advisor.Suspicion)
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			r.styles.Value.Render(fmt.Sprintf("%-10s", advisor.Name)),
			r.styles.Warn.Render(bar),
			r.styles.Muted.Render(fmt.Sprintf("suspicion %d", advisor.Suspicion)),
		))
	}

	if hostile {
		b.WriteString("\n")
		b.WriteString(r.styles.Alert.Render("!! COMMAND AUTHORITY COMPROMISED !!"))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) metricRow(label, value string) string {
	return fmt.Sprintf("  %s %s", r.styles.Label.Render(fmt.Sprintf("%-13s", label)), value)
}

func (r *Renderer) gauge(value int) string {
	style := r.styles.Value
	if value < 30 {
		style = r.styles.Alert
	} else if value < 50 {
		style = r.styles.Warn
	}
	return style.Render(fmt.Sprintf("%3d/100", value))
}

// suspicionBar renders revealed suspicion as a ten-cell bar.
func suspicionBar(value int) string {
	filled := value * suspicionBarWidth / crisis.ScaleMax
	if filled > suspicionBarWidth {
		filled = suspicionBarWidth
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", suspicionBarWidth-filled) + "]"
}

// Cables renders the pending batch. Encrypted cables show their ID and cost
// instead of content.
func (r *Renderer) Cables(cables []cable.Cable) string {
	if len(cables) == 0 {
		return r.styles.Muted.Render("NO TRAFFIC THIS CYCLE.")
	}

	blocks := make([]string, 0, len(cables))
	for _, c := range cables {
		header := fmt.Sprintf("%s · %s · %s", c.ID, c.Clearance, c.Timestamp)
		body := c.Content
		if c.Encrypted {
			body = r.styles.Encrypted.Render(
				fmt.Sprintf("[ENCRYPTED — DECRYPT %s COSTS %d INTEL]", c.ID, c.DecryptCost))
		}
		blocks = append(blocks, r.styles.Cable.Render(
			r.styles.Label.Render(header)+"\n"+body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// Events renders a resolution's event feed, one line per event.
func (r *Renderer) Events(events []crisis.Event) string {
	var b strings.Builder
	for _, event := range events {
		b.WriteString(r.eventLine(event))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) eventLine(event crisis.Event) string {
	switch event.Type {
	case crisis.EventAnomaly, crisis.EventPurgeForced, crisis.EventOverrideSubstituted,
		crisis.EventMoleConfirmed, crisis.EventSessionTerminal:
		return r.styles.Alert.Render("> " + event.Message)
	case crisis.EventAdvisorSlip, crisis.EventBandShift, crisis.EventDirectiveResisted,
		crisis.EventMoleExecuted, crisis.EventMoleTurned:
		return r.styles.Warn.Render("> " + event.Message)
	case crisis.EventAdvice:
		return r.styles.Advice.Render("> " + event.Message)
	case crisis.EventInsufficientIntel, crisis.EventInvalidTarget:
		return r.styles.Muted.Render("> " + event.Message)
	default:
		return r.styles.Value.Render("> " + event.Message)
	}
}

// outcomeBanners are the end-of-session epitaphs.
var outcomeBanners = map[domain.Outcome]string{
	domain.OutcomeWar:            "DEFCON 1. THE BIRDS ARE FLYING. THERE IS NOTHING LEFT TO DIRECT.",
	domain.OutcomeCoup:           "THE GENERALS HAVE SEIZED THE BUNKER. YOUR CLEARANCE IS REVOKED.",
	domain.OutcomeSystemFailure:  "TOTAL SYSTEMS FAILURE. THE CONSOLES ARE DARK. SO IS EVERYTHING ELSE.",
	domain.OutcomeSecretRevealed: "THE PROGRAM IS FRONT-PAGE NEWS IN EVERY CAPITAL. SO ARE YOU.",
	domain.OutcomeMoleUnmasked:   "THE MOLE IS IN CUSTODY. THE MACHINE GOES QUIET. FOR NOW.",
	domain.OutcomeSurvived:       "YOU HELD THE LINE. THE CRISIS PASSES. THE PROGRAM CONTINUES.",
}

// OutcomeBanner renders the final banner for an ended session.
func (r *Renderer) OutcomeBanner(outcome domain.Outcome) string {
	text, ok := outcomeBanners[outcome]
	if !ok {
		text = "SESSION TERMINATED."
	}

	style := r.styles.Banner
	switch outcome {
	case domain.OutcomeMoleUnmasked, domain.OutcomeSurvived:
	default:
		style = style.BorderForeground(colorAlert).Foreground(colorAlert)
	}
	return style.Render(fmt.Sprintf("%s\n\n%s", outcome, text))
}
