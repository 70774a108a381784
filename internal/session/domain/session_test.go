package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCreateSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	session, err := Create(42, func() time.Time { return now }, func() (string, error) { return "sess-1", nil })
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if session.ID != "sess-1" || session.Seed != 42 {
		t.Errorf("unexpected identity: %+v", session)
	}
	if session.Status != StatusActive || session.Frozen() {
		t.Errorf("new session must be active: %+v", session)
	}
	if !session.StartedAt.Equal(now) || !session.UpdatedAt.Equal(now) || session.EndedAt != nil {
		t.Errorf("unexpected timestamps: %+v", session)
	}
}

func TestCreateSessionIDFailure(t *testing.T) {
	idErr := errors.New("entropy exhausted")
	_, err := Create(1, nil, func() (string, error) { return "", idErr })
	if !errors.Is(err, idErr) {
		t.Fatalf("err = %v, want wrapped id error", err)
	}
}

func TestEndFreezesOnce(t *testing.T) {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	session, err := Create(1, func() time.Time { return started }, func() (string, error) { return "sess-1", nil })
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	session.End(OutcomeWar, started.Add(time.Hour))
	if !session.Frozen() || session.Outcome != OutcomeWar {
		t.Fatalf("session not ended: %+v", session)
	}

	// A second End must not overwrite the recorded outcome.
	session.End(OutcomeSurvived, started.Add(2*time.Hour))
	if session.Outcome != OutcomeWar {
		t.Errorf("outcome overwritten to %s", session.Outcome)
	}
	if !session.EndedAt.Equal(started.Add(time.Hour)) {
		t.Errorf("ended timestamp moved: %v", session.EndedAt)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusActive, StatusEnded} {
		if got := StatusFromString(status.String()); got != status {
			t.Errorf("round trip %s -> %s", status, got)
		}
	}
	if got := StatusFromString("bogus"); got != StatusUnspecified {
		t.Errorf("StatusFromString(bogus) = %v, want unspecified", got)
	}
}
