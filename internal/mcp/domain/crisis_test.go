package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeService implements Service for handler tests.
type fakeService struct {
	state  SessionState
	report TurnReport
	err    error

	lastSeed      int64
	lastSessionID string
	lastDirective string
	lastTarget    string
}

func (f *fakeService) StartSession(_ context.Context, seed int64) (SessionState, error) {
	f.lastSeed = seed
	return f.state, f.err
}

func (f *fakeService) SessionStatus(_ context.Context, sessionID string) (SessionState, error) {
	f.lastSessionID = sessionID
	return f.state, f.err
}

func (f *fakeService) SubmitDirective(_ context.Context, sessionID, directive, target string) (TurnReport, error) {
	f.lastSessionID = sessionID
	f.lastDirective = directive
	f.lastTarget = target
	return f.report, f.err
}

func TestCrisisStartHandler(t *testing.T) {
	svc := &fakeService{state: SessionState{SessionID: "abc", Status: "ACTIVE"}}
	handler := CrisisStartHandler(svc)

	_, state, err := handler(context.Background(), nil, CrisisStartInput{Seed: 99})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if svc.lastSeed != 99 {
		t.Errorf("seed not forwarded, got %d", svc.lastSeed)
	}
	if state.SessionID != "abc" {
		t.Errorf("unexpected state: %+v", state)
	}
}

func TestCrisisStartHandlerError(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	handler := CrisisStartHandler(svc)

	_, _, err := handler(context.Background(), nil, CrisisStartInput{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "crisis start failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCrisisStatusHandler(t *testing.T) {
	svc := &fakeService{state: SessionState{SessionID: "abc"}}
	handler := CrisisStatusHandler(svc)

	_, state, err := handler(context.Background(), nil, CrisisStatusInput{SessionID: "abc"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if svc.lastSessionID != "abc" || state.SessionID != "abc" {
		t.Errorf("session id not forwarded: %q / %+v", svc.lastSessionID, state)
	}
}

func TestCrisisSubmitHandler(t *testing.T) {
	svc := &fakeService{report: TurnReport{Events: []EventState{{Type: "DIRECTIVE_APPLIED"}}}}
	handler := CrisisSubmitHandler(svc)

	_, report, err := handler(context.Background(), nil, CrisisSubmitInput{
		SessionID: "abc",
		Directive: "interrogate",
		Target:    "vance",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if svc.lastDirective != "interrogate" || svc.lastTarget != "vance" {
		t.Errorf("directive not forwarded: %q %q", svc.lastDirective, svc.lastTarget)
	}
	if len(report.Events) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestCrisisConsultHandlerMapsToConsultDirective(t *testing.T) {
	svc := &fakeService{}
	handler := CrisisConsultHandler(svc)

	_, _, err := handler(context.Background(), nil, CrisisConsultInput{
		SessionID: "abc",
		Advisor:   "sterling",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if svc.lastDirective != "CONSULT" {
		t.Errorf("expected CONSULT directive, got %q", svc.lastDirective)
	}
	if svc.lastTarget != "sterling" {
		t.Errorf("advisor not forwarded, got %q", svc.lastTarget)
	}
}
