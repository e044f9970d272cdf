package utility

import (
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

// Preset names
const (
	PresetEHP           = "ehp"
	PresetDPSMelee      = "dps_melee"
	PresetDPSSpell      = "dps_spell"
	PresetBalanced      = "balanced"
	PresetBalancedSpell = "balanced_spell"
)

// Hyperparameters bundles a utility with its annealing schedule
type Hyperparameters struct {
	Name               string
	Utility            Func
	MaxIterations      int
	InitialTemperature float64
}

// Validate checks the hyperparameters
func (h *Hyperparameters) Validate() error {
	vb := errors.NewValidationBuilder()
	if h.Name == "" {
		vb.RequiredField("Name")
	}
	if h.Utility == nil {
		vb.RequiredField("Utility")
	}
	errors.ValidatePositive("MaxIterations", h.MaxIterations, vb)
	errors.ValidateNonNegative("InitialTemperature", h.InitialTemperature, vb)
	return vb.Build()
}

var presets = []Hyperparameters{
	{Name: PresetEHP, Utility: EffectiveHP, MaxIterations: 20000, InitialTemperature: 2000},
	{Name: PresetDPSMelee, Utility: MeleeDPS, MaxIterations: 20000, InitialTemperature: 2000},
	{Name: PresetDPSSpell, Utility: SpellDPS, MaxIterations: 20000, InitialTemperature: 1000},
	{Name: PresetBalanced, Utility: Balanced(MeleeDPS, EffectiveHP), MaxIterations: 20000, InitialTemperature: 500},
	{Name: PresetBalancedSpell, Utility: Balanced(SpellDPS, EffectiveHP), MaxIterations: 20000, InitialTemperature: 500},
}

// Preset returns a copy of the named preset
func Preset(name string) (Hyperparameters, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Hyperparameters{}, errors.NotFoundf("unknown preset %q", name).
		WithMeta("preset", name).
		WithMeta("available", PresetNames())
}

// PresetNames lists the presets in declaration order
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}
