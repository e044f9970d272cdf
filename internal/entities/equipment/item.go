package equipment

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

// EntityType is the rpg-toolkit entity type reported by items
const EntityType = "item"

// DamageRange is a weapon's minimum and maximum damage for one damage type
type DamageRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Average returns the midpoint of the range
func (d DamageRange) Average() float64 {
	return (d.Min + d.Max) / 2
}

// ParseDamageRange parses a catalog damage string such as "12-30"
func ParseDamageRange(s string) (DamageRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return DamageRange{}, errors.DataLossf("malformed damage string %q", s).
			WithMeta("value", s)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return DamageRange{}, errors.WrapWithCodef(err, errors.CodeDataLoss, "malformed damage string %q", s)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return DamageRange{}, errors.WrapWithCodef(err, errors.CodeDataLoss, "malformed damage string %q", s)
	}

	return DamageRange{Min: lo, Max: hi}, nil
}

// Item is an immutable catalog record. Optional catalog fields are already
// zero-filled by the loader, so readers never test for presence.
type Item struct {
	// Catalog name, unique within a catalog
	ID string `json:"id"`

	// Name shown to players, falls back to ID
	DisplayName string `json:"display_name,omitempty"`

	Category Category `json:"category"`
	Tier     Tier     `json:"tier"`
	Level    int      `json:"level"`

	// Empty when any class may use the item
	ClassRequirement Class `json:"class_requirement,omitempty"`

	Requirements StatVector `json:"requirements"`
	Bonuses      StatVector `json:"bonuses"`

	Health         int `json:"health,omitempty"`
	HealthBonus    int `json:"health_bonus,omitempty"`
	HealthRegen    int `json:"health_regen,omitempty"`
	HealthRegenRaw int `json:"health_regen_raw,omitempty"`

	// Percent and flat melee damage
	DamageBonus    int `json:"damage_bonus,omitempty"`
	DamageBonusRaw int `json:"damage_bonus_raw,omitempty"`

	// Percent and flat spell damage
	SpellDamage           int `json:"spell_damage,omitempty"`
	SpellDamageRaw        int `json:"spell_damage_raw,omitempty"`
	RainbowSpellDamageRaw int `json:"rainbow_spell_damage_raw,omitempty"`

	Poison int `json:"poison,omitempty"`

	// Percent damage bonus per element
	ElementalDamageBonus [NumElements]int `json:"elemental_damage_bonus"`

	// Weapon only
	Damage      [NumDamageTypes]DamageRange `json:"damage"`
	AttackSpeed AttackSpeed                 `json:"attack_speed,omitempty"`
}

var _ core.Entity = (*Item)(nil)

// GetID returns the catalog name
func (i *Item) GetID() string {
	return i.ID
}

// GetType returns the entity type for rpg-toolkit
func (i *Item) GetType() string {
	return EntityType
}

// Name returns the display name, or the ID when none is set
func (i *Item) Name() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.ID
}

// IsWeapon reports whether the item belongs in the weapon slot
func (i *Item) IsWeapon() bool {
	return i.Category.IsWeapon()
}

// ParticipatesInEquipOrder reports whether the item has any requirement or
// any nonzero bonus. Items that do not cannot change equip-order feasibility.
func (i *Item) ParticipatesInEquipOrder() bool {
	for _, r := range i.Requirements {
		if r > 0 {
			return true
		}
	}
	return !i.Bonuses.IsZero()
}
