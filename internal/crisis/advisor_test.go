package crisis

import "testing"

func TestLookup(t *testing.T) {
	registry := NewRegistry(RestoreOracle(AdvisorVance))

	tests := []struct {
		target string
		want   AdvisorName
		ok     bool
	}{
		{"Vance", AdvisorVance, true},
		{"vance", AdvisorVance, true},
		{"  STERLING ", AdvisorSterling, true},
		{"directork", AdvisorDirectorK, true},
		{"director", AdvisorDirectorK, true},
		{"k", AdvisorDirectorK, true},
		{"zhukov", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, ok := registry.Lookup(tc.target)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Lookup(%q) = (%s, %t), want (%s, %t)", tc.target, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSetSuspicionClamps(t *testing.T) {
	registry := NewRegistry(RestoreOracle(AdvisorVance))

	registry.SetSuspicion(AdvisorSterling, 150)
	if got := registry.Suspicion(AdvisorSterling); got != 100 {
		t.Errorf("suspicion = %d, want clamp to 100", got)
	}
	registry.SetSuspicion(AdvisorSterling, -10)
	if got := registry.Suspicion(AdvisorSterling); got != 0 {
		t.Errorf("suspicion = %d, want clamp to 0", got)
	}
}

func TestInterrogateSuccess(t *testing.T) {
	tuning := DefaultTuning()

	t.Run("loyal advisor cracks", func(t *testing.T) {
		registry := NewRegistry(RestoreOracle(AdvisorVance))
		events := registry.Interrogate(AdvisorSterling, tuning, &stubRNG{floats: []float64{0.0}})

		if len(events) != 1 || events[0].Type != EventSuspicionChanged {
			t.Fatalf("events = %+v, want single suspicion change", events)
		}
		if got := registry.Suspicion(AdvisorSterling); got != tuning.InterrogateSuccessGain {
			t.Errorf("suspicion = %d, want %d", got, tuning.InterrogateSuccessGain)
		}
	})

	t.Run("mole slips", func(t *testing.T) {
		registry := NewRegistry(RestoreOracle(AdvisorVance))
		events := registry.Interrogate(AdvisorVance, tuning, &stubRNG{floats: []float64{0.0}})

		if len(events) != 2 {
			t.Fatalf("events = %+v, want suspicion change plus slip", events)
		}
		if events[1].Type != EventAdvisorSlip || events[1].Advisor != AdvisorVance {
			t.Errorf("second event = %+v, want advisor slip by Vance", events[1])
		}
	})
}

func TestInterrogateFailure(t *testing.T) {
	tuning := DefaultTuning()

	t.Run("holds firm", func(t *testing.T) {
		registry := NewRegistry(RestoreOracle(AdvisorVance))
		events := registry.Interrogate(AdvisorSterling, tuning, &stubRNG{floats: []float64{0.99, 0.99}})

		if len(events) != 1 || events[0].Type != EventSuspicionChanged {
			t.Fatalf("events = %+v, want single suspicion change", events)
		}
		if got := registry.Suspicion(AdvisorSterling); got != tuning.InterrogateFailureGain {
			t.Errorf("suspicion = %d, want %d", got, tuning.InterrogateFailureGain)
		}
	})

	t.Run("false lead smears the bystander", func(t *testing.T) {
		registry := NewRegistry(RestoreOracle(AdvisorVance))
		events := registry.Interrogate(AdvisorSterling, tuning, &stubRNG{floats: []float64{0.99, 0.0}, ints: []int{0}})

		if len(events) != 2 {
			t.Fatalf("events = %+v, want failure plus false lead", events)
		}
		smeared := events[1].Advisor
		if smeared != AdvisorDirectorK {
			t.Errorf("smeared %s, want the advisor who is neither target nor mole", smeared)
		}
		if got := registry.Suspicion(AdvisorDirectorK); got != tuning.FalseLeadGain {
			t.Errorf("bystander suspicion = %d, want %d", got, tuning.FalseLeadGain)
		}
	})
}

func TestInterrogateChanceScalesWithSuspicion(t *testing.T) {
	tuning := DefaultTuning()
	registry := NewRegistry(RestoreOracle(AdvisorVance))
	registry.SetSuspicion(AdvisorSterling, 80)

	// base 0.25 + 80/200 = 0.65; a 0.5 draw succeeds only because of the
	// accumulated suspicion.
	events := registry.Interrogate(AdvisorSterling, tuning, &stubRNG{floats: []float64{0.5}})
	if len(events) != 1 || events[0].Type != EventSuspicionChanged {
		t.Fatalf("events = %+v, want success", events)
	}
	if got := registry.Suspicion(AdvisorSterling); got != 80+tuning.InterrogateSuccessGain {
		t.Errorf("suspicion = %d, want %d", got, 80+tuning.InterrogateSuccessGain)
	}
}

func TestConsultLoyalAdvisor(t *testing.T) {
	registry := NewRegistry(RestoreOracle(AdvisorVance))

	t.Run("calm metrics echo the preference", func(t *testing.T) {
		advice := registry.Consult(AdvisorSterling, NewMetrics(), &stubRNG{})
		if advice.Recommended != DirectiveContain {
			t.Errorf("recommended %s, want CONTAIN", advice.Recommended)
		}
		if advice.Advisor != AdvisorSterling || advice.Confidence == "" {
			t.Errorf("advice = %+v, want attributed phrase", advice)
		}
	})

	t.Run("crisis overrides the preference", func(t *testing.T) {
		m := NewMetrics()
		m.Defcon = 2
		advice := registry.Consult(AdvisorDirectorK, m, &stubRNG{floats: []float64{0.0}})
		if advice.Recommended != DirectiveContain {
			t.Errorf("recommended %s, want CONTAIN at DEFCON 2", advice.Recommended)
		}
	})

	t.Run("runaway program demands an audit", func(t *testing.T) {
		m := NewMetrics()
		m.WeaponProgress = 80
		advice := registry.Consult(AdvisorSterling, m, &stubRNG{floats: []float64{0.0}})
		if advice.Recommended != DirectiveInvestigate {
			t.Errorf("recommended %s, want INVESTIGATE", advice.Recommended)
		}
	})
}

func TestMoleConfirmed(t *testing.T) {
	tuning := DefaultTuning()
	registry := NewRegistry(RestoreOracle(AdvisorVance))

	if registry.MoleConfirmed(tuning.UnmaskedThreshold) {
		t.Fatal("mole confirmed with zero suspicion")
	}
	registry.SetSuspicion(AdvisorVance, tuning.UnmaskedThreshold-1)
	if registry.MoleConfirmed(tuning.UnmaskedThreshold) {
		t.Fatal("mole confirmed below the threshold")
	}
	registry.SetSuspicion(AdvisorVance, tuning.UnmaskedThreshold)
	if !registry.MoleConfirmed(tuning.UnmaskedThreshold) {
		t.Fatal("mole not confirmed at the threshold")
	}

	// A bystander at the threshold proves nothing.
	fresh := NewRegistry(RestoreOracle(AdvisorVance))
	fresh.SetSuspicion(AdvisorSterling, tuning.UnmaskedThreshold)
	if fresh.MoleConfirmed(tuning.UnmaskedThreshold) {
		t.Fatal("bystander suspicion confirmed the mole")
	}
}

func TestNeutralizeTakesMoleOffTheBoard(t *testing.T) {
	tuning := DefaultTuning()
	registry := NewRegistry(RestoreOracle(AdvisorVance))
	registry.SetSuspicion(AdvisorVance, tuning.UnmaskedThreshold)

	if got := registry.Neutralize(); got != AdvisorVance {
		t.Fatalf("Neutralize() = %s, want the mole Vance", got)
	}
	if !registry.MoleNeutralized() {
		t.Error("MoleNeutralized() = false after Neutralize")
	}
	if registry.MoleConfirmed(tuning.UnmaskedThreshold) {
		t.Error("a neutralized mole must not stay confirmed")
	}

	// Interrogating the neutralized mole loses the slip tell.
	events := registry.Interrogate(AdvisorVance, tuning, &stubRNG{floats: []float64{0.0}})
	for _, event := range events {
		if event.Type == EventAdvisorSlip {
			t.Errorf("events = %+v, neutralized mole must not slip", events)
		}
	}
}

func TestConsultNeutralizedMoleActsLoyal(t *testing.T) {
	registry := NewRegistry(RestoreOracle(AdvisorSterling))
	registry.SetMoleNeutralized(true)

	// 0.99 would fail the mole's cover roll and expose the escalation steer;
	// off the board, Sterling just gives the diplomat's answer.
	advice := registry.Consult(AdvisorSterling, NewMetrics(), &stubRNG{floats: []float64{0.99}})
	if advice.Recommended != DirectiveContain {
		t.Errorf("recommended %s, want CONTAIN from a flipped asset", advice.Recommended)
	}
}

func TestConsultMole(t *testing.T) {
	registry := NewRegistry(RestoreOracle(AdvisorSterling))

	t.Run("pushes escalation when defcon allows", func(t *testing.T) {
		// 0.99 fails the cover roll, exposing the steer.
		advice := registry.Consult(AdvisorSterling, NewMetrics(), &stubRNG{floats: []float64{0.99}})
		if advice.Recommended != DirectiveEscalate {
			t.Errorf("recommended %s, want ESCALATE", advice.Recommended)
		}
	})

	t.Run("pushes audits near the brink", func(t *testing.T) {
		m := NewMetrics()
		m.Defcon = 2
		advice := registry.Consult(AdvisorSterling, m, &stubRNG{floats: []float64{0.99}})
		if advice.Recommended != DirectiveInvestigate {
			t.Errorf("recommended %s, want INVESTIGATE", advice.Recommended)
		}
	})

	t.Run("keeps cover behind the public preference", func(t *testing.T) {
		advice := registry.Consult(AdvisorSterling, NewMetrics(), &stubRNG{floats: []float64{0.0}})
		if advice.Recommended != DirectiveContain {
			t.Errorf("recommended %s, want the cover CONTAIN", advice.Recommended)
		}
	})
}
