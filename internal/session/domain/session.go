// Package domain defines the session entity and its lifecycle.
//
// A Session is one playthrough of the crisis: a seed, a hidden mole, and a
// run of resolved turns. Sessions move from Active to Ended exactly once;
// after ending they are frozen and reject further directives.
package domain

import (
	"fmt"
	"time"

	"github.com/louisbranch/basilisk/internal/id"
)

// Status describes the lifecycle state of a session.
type Status int

const (
	// StatusUnspecified represents an invalid session status value.
	StatusUnspecified Status = iota
	// StatusActive indicates the session accepts directives.
	StatusActive
	// StatusEnded indicates the session is frozen.
	StatusEnded
)

// String returns the status label used in storage and presentation.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusEnded:
		return "ENDED"
	default:
		return "UNSPECIFIED"
	}
}

// StatusFromString reverses String for persisted values.
func StatusFromString(value string) Status {
	switch value {
	case "ACTIVE":
		return StatusActive
	case "ENDED":
		return StatusEnded
	default:
		return StatusUnspecified
	}
}

// Outcome is the final classification of an ended session.
type Outcome string

const (
	// OutcomeWar: DEFCON reached 1.
	OutcomeWar Outcome = "WAR"
	// OutcomeCoup: stability collapsed.
	OutcomeCoup Outcome = "COUP"
	// OutcomeSystemFailure: the bunker systems failed.
	OutcomeSystemFailure Outcome = "SYSTEM_FAILURE"
	// OutcomeSecretRevealed: the program was fully exposed.
	OutcomeSecretRevealed Outcome = "SECRET_REVEALED"
	// OutcomeMoleUnmasked: the mole was identified before the takeover.
	OutcomeMoleUnmasked Outcome = "MOLE_UNMASKED"
	// OutcomeSurvived: the turn limit passed without a collapse.
	OutcomeSurvived Outcome = "SURVIVED"
)

// Session is one playthrough.
type Session struct {
	ID        string
	Seed      int64
	Status    Status
	Outcome   Outcome
	StartedAt time.Time
	UpdatedAt time.Time
	EndedAt   *time.Time // nil while the session is active
}

// Create creates an active session with a generated ID and timestamps.
func Create(seed int64, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	return Session{
		ID:        sessionID,
		Seed:      seed,
		Status:    StatusActive,
		StartedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// End freezes the session with a final outcome. Ending an already ended
// session is a no-op; the first outcome stands.
func (s *Session) End(outcome Outcome, now time.Time) {
	if s.Status == StatusEnded {
		return
	}
	ended := now.UTC()
	s.Status = StatusEnded
	s.Outcome = outcome
	s.UpdatedAt = ended
	s.EndedAt = &ended
}

// Frozen reports whether the session rejects further directives.
func (s Session) Frozen() bool {
	return s.Status == StatusEnded
}
