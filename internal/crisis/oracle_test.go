package crisis

import "testing"

func TestSelectMoleDeterministic(t *testing.T) {
	first := SelectMole(newSeededRNG(42))
	second := SelectMole(newSeededRNG(42))

	if first.Mole() != second.Mole() {
		t.Errorf("same seed picked different moles: %s vs %s", first.Mole(), second.Mole())
	}
}

func TestSelectMoleCoversRoster(t *testing.T) {
	names := AdvisorNames()
	for i, want := range names {
		oracle := SelectMole(&stubRNG{ints: []int{i}})
		if oracle.Mole() != want {
			t.Errorf("draw %d: mole = %s, want %s", i, oracle.Mole(), want)
		}
		if !oracle.IsMole(want) {
			t.Errorf("IsMole(%s) = false after selection", want)
		}
	}
}

func TestRestoreOracle(t *testing.T) {
	oracle := RestoreOracle(AdvisorSterling)
	if !oracle.IsMole(AdvisorSterling) {
		t.Error("restored oracle lost its mole")
	}
	if oracle.IsMole(AdvisorVance) || oracle.IsMole(AdvisorDirectorK) {
		t.Error("restored oracle reports extra moles")
	}
}
