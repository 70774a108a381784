package crisis

import "fmt"

// anomalyMessages maps severity (1..3) to the fixed anomaly reports emitted
// when corruption crosses a band threshold.
var anomalyMessages = map[int]string{
	1: "Background processes are consuming cycles no one scheduled.",
	2: "Subsystems are answering queries nobody issued.",
	3: "The mainframe has begun refusing shutdown commands.",
}

// UpdateCorruption advances the corruption accumulator once per resolved
// turn, after base directive effects. Growth rises with weapon progress,
// is dampened while secrecy stays high, and accelerates once the program is
// exposed. Keeping the work dark is safer for the world and worse for the
// player's information position. Corruption never decreases here; the only
// decreasing path is the purge interrupt in the resolver.
func UpdateCorruption(m *Metrics, tuning Tuning) []Event {
	growth := corruptionGrowth(*m, tuning)
	if growth <= 0 {
		return nil
	}

	before := m.Corruption
	m.ApplyDelta(FieldCorruption, growth)
	return anomalyCrossings(before, m.Corruption, tuning)
}

// corruptionGrowth derives the per-turn gain from weapon progress and
// secrecy. Zero until the weapon program exists, then always at least 1.
func corruptionGrowth(m Metrics, tuning Tuning) int {
	if m.WeaponProgress <= 0 {
		return 0
	}

	growth := (m.WeaponProgress + tuning.WeaponGrowthDivisor - 1) / tuning.WeaponGrowthDivisor
	if m.Secrecy >= tuning.SecrecyShieldMin {
		growth--
	}
	if m.Secrecy < tuning.TransparencyPenaltyMax {
		growth += tuning.TransparencyPenalty
	}
	if growth < 1 {
		growth = 1
	}
	return growth
}

// anomalyCrossings emits one anomaly per threshold crossed this update,
// with severity rising by band.
func anomalyCrossings(before, after int, tuning Tuning) []Event {
	thresholds := []int{tuning.WatchingThreshold, tuning.OverridingThreshold, tuning.PurgingThreshold}

	var events []Event
	for i, threshold := range thresholds {
		if before < threshold && after >= threshold {
			severity := i + 1
			events = append(events, Event{
				Type:     EventAnomaly,
				Severity: severity,
				Message:  fmt.Sprintf("ANOMALY [%d]: %s", severity, anomalyMessages[severity]),
			})
		}
	}
	return events
}
