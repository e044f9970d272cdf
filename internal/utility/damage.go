package utility

import (
	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/rules"
)

// MaxBoostSP is the highest skill point value the boost table covers
const MaxBoostSP = 150

// spToPercentage is the percent damage boost granted by 0..150 skill points
var spToPercentage = [MaxBoostSP + 1]float64{
	0, 1, 2, 2.9, 3.9, 4.9, 5.8, 6.7, 7.7, 8.6,
	9.5, 10.4, 11.3, 12.2, 13.1, 13.9, 14.8, 15.7, 16.5, 17.3,
	18.2, 19, 19.8, 20.6, 21.4, 22.2, 23, 23.8, 24.6, 25.3,
	26.1, 26.8, 27.6, 28.3, 29, 29.8, 30.5, 31.2, 31.9, 32.6,
	33.3, 34, 34.6, 35.3, 36, 36.6, 37.3, 37.9, 38.6, 39.2,
	39.9, 40.5, 41.1, 41.7, 42.3, 42.9, 43.5, 44.1, 44.7, 45.3,
	45.8, 46.4, 47, 47.5, 48.1, 48.6, 49.2, 49.7, 50.3, 50.8,
	51.3, 51.8, 52.3, 52.8, 53.4, 53.9, 54.3, 54.8, 55.3, 55.8,
	56.3, 56.8, 57.2, 57.7, 58.1, 58.6, 59.1, 59.5, 59.9, 60.4,
	60.8, 61.3, 61.7, 62.1, 62.5, 62.9, 63.3, 63.8, 64.2, 64.6,
	65, 65.4, 65.7, 66.1, 66.5, 66.9, 67.3, 67.6, 68, 68.4,
	68.7, 69.1, 69.4, 69.8, 70.1, 70.5, 70.8, 71.2, 71.5, 71.8,
	72.2, 72.5, 72.8, 73.1, 73.5, 73.8, 74.1, 74.4, 74.7, 75,
	75.3, 75.6, 75.9, 76.2, 76.5, 76.8, 77.1, 77.3, 77.6, 77.9,
	78.2, 78.4, 78.7, 79, 79.2, 79.5, 79.8, 80, 80.3, 80.5, 80.8,
}

// SPToIDBoost converts skill points into a fractional damage boost.
// sp is clamped to [0, 150] before lookup.
func SPToIDBoost(sp int) float64 {
	return spToPercentage[min(max(sp, 0), MaxBoostSP)] / 100
}

// Components splits damage per second into neutral and elemental parts
type Components struct {
	Neutral   float64
	Elemental [equipment.NumElements]float64
}

// Total sums every component
func (c Components) Total() float64 {
	total := c.Neutral
	for _, e := range c.Elemental {
		total += e
	}
	return total
}

// Damage is the estimated damage per second of a build
type Damage struct {
	Melee Components
	Spell Components
}

// boosts holds fractional percent bonuses
type boosts struct {
	neutral   float64
	elemental [equipment.NumElements]float64
}

type totals struct {
	damageBonus    int
	damageBonusRaw int
	spellDamage    int
	spellRaw       int
	rainbowRaw     int
	poison         int
	elemental      [equipment.NumElements]int
}

func sumTotals(b equipment.Build) totals {
	var t totals
	for _, item := range b.Items() {
		t.damageBonus += item.DamageBonus
		t.damageBonusRaw += item.DamageBonusRaw
		t.spellDamage += item.SpellDamage
		t.spellRaw += item.SpellDamageRaw
		t.rainbowRaw += item.RainbowSpellDamageRaw
		t.poison += item.Poison
		for e := range t.elemental {
			t.elemental[e] += item.ElementalDamageBonus[e]
		}
	}
	return t
}

func idBoosts(percent int, elemental [equipment.NumElements]int, sp [equipment.NumSkills]float64) boosts {
	base := float64(percent) / 100
	out := boosts{neutral: base}
	for e := range out.elemental {
		out.elemental[e] = sp[e] + base + float64(elemental[e])/100
	}
	return out
}

// DPS estimates melee and spell damage per second. A build without a
// weapon, or whose weapon has no known attack speed, deals no damage.
// Skill points come from the order-naive allocation.
func DPS(b equipment.Build) Damage {
	weapon := b.Weapon()
	if weapon == nil {
		return Damage{}
	}
	asm := weapon.AttackSpeed.Multiplier()

	var spBoost [equipment.NumSkills]float64
	for d, sp := range rules.FinalSkillPoints(b) {
		spBoost[d] = SPToIDBoost(sp)
	}
	// strength and dexterity scale every damage type
	scale := 1 + spBoost[equipment.Strength] + spBoost[equipment.Dexterity]

	t := sumTotals(b)
	melee := idBoosts(t.damageBonus, t.elemental, spBoost)
	spell := idBoosts(t.spellDamage, t.elemental, spBoost)

	neutral := weapon.Damage[equipment.DamageNeutral].Average()
	poison := float64(t.poison) / 3

	var d Damage
	d.Melee.Neutral = ((neutral*max(0, 1+melee.neutral)+float64(t.damageBonusRaw))*asm + poison) * scale
	d.Spell.Neutral = (neutral*max(0, 1+spell.neutral)*asm + poison + float64(t.spellRaw)) * scale

	for e := 0; e < equipment.NumElements; e++ {
		base := weapon.Damage[equipment.ElementDamage(equipment.Element(e))].Average()
		d.Melee.Elemental[e] = base * max(0, 1+melee.elemental[e]) * asm * scale
		d.Spell.Elemental[e] = (base + float64(t.rainbowRaw)) * max(0, 1+spell.elemental[e]) * asm * scale
	}
	return d
}

// MeleeDPS is the total melee damage per second
func MeleeDPS(b equipment.Build) float64 {
	return DPS(b).Melee.Total()
}

// SpellDPS is the total spell damage per second
func SpellDPS(b equipment.Build) float64 {
	return DPS(b).Spell.Total()
}
