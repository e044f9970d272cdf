package rules

import (
	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

// Reason names the first rule a build broke. ReasonNone means valid.
type Reason string

// Rejection reasons, in the order they are checked
const (
	ReasonNone        Reason = ""
	ReasonSkillCap    Reason = "skill_cap"
	ReasonSkillBudget Reason = "skill_budget"
	ReasonEquipOrder  Reason = "equip_order"
	ReasonClass       Reason = "class"
	ReasonLevel       Reason = "level"
)

// AllReasons lists every rejection reason
func AllReasons() []Reason {
	return []Reason{ReasonSkillCap, ReasonSkillBudget, ReasonEquipOrder, ReasonClass, ReasonLevel}
}

// ReasonNames returns AllReasons as metric label values
func ReasonNames() []string {
	reasons := AllReasons()
	names := make([]string, len(reasons))
	for i, r := range reasons {
		names[i] = string(r)
	}
	return names
}

// ValidatorConfig configures a Validator
type ValidatorConfig struct {
	// Level is the target character level
	Level int

	// Class is optional; empty means any class, fixed by the weapon if present
	Class equipment.Class

	// Strict enables the equip-order search
	Strict bool
}

// Validate checks the configuration
func (c *ValidatorConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("Level", c.Level, vb)
	if c.Class != "" && !c.Class.IsValid() {
		vb.InvalidField("Class", "unknown class "+string(c.Class))
	}
	return vb.Build()
}

// Validator decides build feasibility for one level and class constraint.
// It never mutates the builds it inspects.
type Validator struct {
	level  int
	class  equipment.Class
	strict bool
}

// NewValidator creates a validator
func NewValidator(cfg *ValidatorConfig) (*Validator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Validator{
		level:  cfg.Level,
		class:  cfg.Class,
		strict: cfg.Strict,
	}, nil
}

// Level returns the target level
func (v *Validator) Level() int {
	return v.level
}

// Class returns the class constraint, empty if none
func (v *Validator) Class() equipment.Class {
	return v.class
}

// Validate reports whether b is wearable. The error is non-nil only when the
// build holds corrupt data, such as a non-weapon in the weapon slot.
func (v *Validator) Validate(b equipment.Build) (bool, error) {
	reason, err := v.Check(b)
	if err != nil {
		return false, err
	}
	return reason == ReasonNone, nil
}

// Check returns the first rule b breaks, or ReasonNone
func (v *Validator) Check(b equipment.Build) (Reason, error) {
	if reason := fastReason(b, v.level); reason != ReasonNone {
		return reason, nil
	}

	if v.strict && !StrictCheck(b, v.level) {
		return ReasonEquipOrder, nil
	}

	ok, err := classAllowed(b, v.class)
	if err != nil {
		return ReasonNone, err
	}
	if !ok {
		return ReasonClass, nil
	}

	for _, item := range b.Items() {
		if item.Level > v.level {
			return ReasonLevel, nil
		}
	}

	return ReasonNone, nil
}

// classAllowed applies the class constraint. With no explicit constraint the
// weapon's class becomes the constraint for the remaining items.
func classAllowed(b equipment.Build, class equipment.Class) (bool, error) {
	if weapon := b.Weapon(); weapon != nil {
		implied, ok := equipment.ClassForWeapon(weapon.Category)
		if !ok {
			return false, errors.Internalf("item %q in weapon slot has no weapon category", weapon.ID).
				WithMeta("item", weapon.ID).
				WithMeta("category", string(weapon.Category))
		}
		if class == "" {
			class = implied
		} else if implied != class {
			return false, nil
		}
	}

	if class == "" {
		return true, nil
	}
	for _, item := range b.Items() {
		if item.ClassRequirement != "" && item.ClassRequirement != class {
			return false, nil
		}
	}
	return true, nil
}
