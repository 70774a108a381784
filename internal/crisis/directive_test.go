package crisis

import "testing"

func TestKindFromString(t *testing.T) {
	tests := []struct {
		input string
		want  DirectiveKind
	}{
		{"investigate", DirectiveInvestigate},
		{"INVESTIGATE", DirectiveInvestigate},
		{"inv", DirectiveInvestigate},
		{"con", DirectiveContain},
		{"  escalate ", DirectiveEscalate},
		{"leak", DirectiveLeak},
		{"dec", DirectiveDecrypt},
		{"tr", DirectiveTrace},
		{"int", DirectiveInterrogate},
		{"ask", DirectiveConsult},
		{"execute", DirectiveExecute},
		{"exec", DirectiveExecute},
		{"turn", DirectiveTurn},
		{"flip", DirectiveTurn},
		{"launch", DirectiveUnspecified},
		{"", DirectiveUnspecified},
	}
	for _, tc := range tests {
		if got := KindFromString(tc.input); got != tc.want {
			t.Errorf("KindFromString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNeedsTarget(t *testing.T) {
	for _, kind := range []DirectiveKind{DirectiveDecrypt, DirectiveInterrogate, DirectiveConsult} {
		if !kind.NeedsTarget() {
			t.Errorf("%v should need a target", kind)
		}
	}
	for _, kind := range []DirectiveKind{DirectiveInvestigate, DirectiveContain, DirectiveEscalate, DirectiveLeak, DirectiveTrace, DirectiveExecute, DirectiveTurn} {
		if kind.NeedsTarget() {
			t.Errorf("%v should not need a target", kind)
		}
	}
}
