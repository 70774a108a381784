package crisis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/basilisk/internal/errors"
)

// Deltas is the fixed base effect of a directive on the metric fields.
// Zero values mean no effect on that field.
type Deltas struct {
	Defcon         int `yaml:"defcon"`
	Stability      int `yaml:"stability"`
	SystemStatus   int `yaml:"system_status"`
	Intel          int `yaml:"intel"`
	WeaponProgress int `yaml:"weapon_progress"`
	Secrecy        int `yaml:"secrecy"`
}

// Tuning holds every numeric knob of the engine. The rules are qualitative;
// the exact numbers are balance decisions, so they live here with defaults
// and can be overridden from a YAML file without recompiling.
type Tuning struct {
	// Autonomy bands, level-triggered on corruption.
	WatchingThreshold   int `yaml:"watching_threshold"`
	OverridingThreshold int `yaml:"overriding_threshold"`
	PurgingThreshold    int `yaml:"purging_threshold"`

	// Override behavior.
	OverrideChance          float64 `yaml:"override_chance"`
	WatchingResistChance    float64 `yaml:"watching_resist_chance"`
	PurgeAmplifier          int     `yaml:"purge_amplifier"`
	PurgeInterruptReduction int     `yaml:"purge_interrupt_reduction"`

	// Corruption growth. Growth rises with weapon progress, is dampened
	// while secrecy stays at or above SecrecyShieldMin, and accelerates
	// while secrecy falls below TransparencyPenaltyMax.
	WeaponGrowthDivisor    int `yaml:"weapon_growth_divisor"`
	SecrecyShieldMin       int `yaml:"secrecy_shield_min"`
	TransparencyPenaltyMax int `yaml:"transparency_penalty_max"`
	TransparencyPenalty    int `yaml:"transparency_penalty"`

	// Intel costs.
	TraceCost       int `yaml:"trace_cost"`
	InterrogateCost int `yaml:"interrogate_cost"`

	// Interrogation.
	InterrogateBaseChance  float64 `yaml:"interrogate_base_chance"`
	InterrogateSlipBonus   float64 `yaml:"interrogate_slip_bonus"`
	InterrogateSuccessGain int     `yaml:"interrogate_success_gain"`
	InterrogateFailureGain int     `yaml:"interrogate_failure_gain"`
	FalseLeadChance        float64 `yaml:"false_lead_chance"`
	FalseLeadGain          int     `yaml:"false_lead_gain"`

	// Tracing.
	TraceBaseChance float64 `yaml:"trace_base_chance"`
	TraceLockGain   int     `yaml:"trace_lock_gain"`

	// Directive resolution.
	EscalateCleanChance float64 `yaml:"escalate_clean_chance"`
	TightenChance       float64 `yaml:"tighten_chance"`
	JitterMax           int     `yaml:"jitter_max"`

	// Base effect tables.
	Escalate       Deltas `yaml:"escalate"`
	EscalateMishap Deltas `yaml:"escalate_mishap"`
	Investigate    Deltas `yaml:"investigate"`
	Contain        Deltas `yaml:"contain"`
	Leak           Deltas `yaml:"leak"`
	Execute        Deltas `yaml:"execute"`
	DoubleAgent    Deltas `yaml:"double_agent"`

	// Session shape.
	MaxTurns          int `yaml:"max_turns"`
	UnmaskedThreshold int `yaml:"unmasked_threshold"`
}

// DefaultTuning returns the shipped balance.
func DefaultTuning() Tuning {
	return Tuning{
		WatchingThreshold:   40,
		OverridingThreshold: 70,
		PurgingThreshold:    90,

		OverrideChance:          0.35,
		WatchingResistChance:    0.30,
		PurgeAmplifier:          3,
		PurgeInterruptReduction: 25,

		WeaponGrowthDivisor:    10,
		SecrecyShieldMin:       70,
		TransparencyPenaltyMax: 40,
		TransparencyPenalty:    2,

		TraceCost:       1,
		InterrogateCost: 2,

		InterrogateBaseChance:  0.25,
		InterrogateSlipBonus:   0.25,
		InterrogateSuccessGain: 30,
		InterrogateFailureGain: 5,
		FalseLeadChance:        0.15,
		FalseLeadGain:          10,

		TraceBaseChance: 0.30,
		TraceLockGain:   20,

		EscalateCleanChance: 0.60,
		TightenChance:       0.50,
		JitterMax:           2,

		Escalate:       Deltas{Defcon: -1, Stability: 3, WeaponProgress: 4, Secrecy: 2},
		EscalateMishap: Deltas{Defcon: -1, Stability: -4, SystemStatus: -5, WeaponProgress: 4},
		Investigate:    Deltas{Stability: -1, Intel: 1, WeaponProgress: 8, Secrecy: -6},
		Contain:        Deltas{Defcon: 1, Stability: -4, Secrecy: 1},
		Leak:           Deltas{Stability: 6, Secrecy: -12},
		Execute:        Deltas{Defcon: -1, Stability: 30},
		DoubleAgent:    Deltas{Defcon: 1, Intel: 3, Secrecy: -10},

		MaxTurns:          20,
		UnmaskedThreshold: 100,
	}
}

// LoadTuning reads YAML overrides from path on top of the defaults.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &tuning); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := tuning.Validate(); err != nil {
		return Tuning{}, err
	}
	return tuning, nil
}

// Validate rejects tunings that break engine invariants.
func (t Tuning) Validate() error {
	if !(t.WatchingThreshold < t.OverridingThreshold && t.OverridingThreshold < t.PurgingThreshold) {
		return apperrors.New(apperrors.CodeTuningInvalid, "autonomy thresholds must be strictly increasing")
	}
	if t.WatchingThreshold <= 0 || t.PurgingThreshold > ScaleMax {
		return apperrors.New(apperrors.CodeTuningInvalid, "autonomy thresholds must be within the corruption scale")
	}
	if t.PurgeInterruptReduction <= 0 {
		return apperrors.New(apperrors.CodeTuningInvalid, "purge interrupt reduction must be positive")
	}
	if t.WeaponGrowthDivisor <= 0 {
		return apperrors.New(apperrors.CodeTuningInvalid, "weapon growth divisor must be positive")
	}
	if t.TraceCost < 0 || t.InterrogateCost < 0 {
		return apperrors.New(apperrors.CodeTuningInvalid, "intel costs must not be negative")
	}
	if t.PurgeAmplifier < 1 {
		return apperrors.New(apperrors.CodeTuningInvalid, "purge amplifier must be at least 1")
	}
	if t.JitterMax < 0 {
		return apperrors.New(apperrors.CodeTuningInvalid, "jitter max must not be negative")
	}
	for _, chance := range []float64{
		t.OverrideChance, t.WatchingResistChance, t.InterrogateBaseChance,
		t.InterrogateSlipBonus, t.FalseLeadChance, t.TraceBaseChance,
		t.EscalateCleanChance, t.TightenChance,
	} {
		if chance < 0 || chance > 1 {
			return apperrors.New(apperrors.CodeTuningInvalid, "probabilities must be within [0,1]")
		}
	}
	if t.MaxTurns <= 0 {
		return apperrors.New(apperrors.CodeTuningInvalid, "max turns must be positive")
	}
	return nil
}
