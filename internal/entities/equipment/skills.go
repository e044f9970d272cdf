package equipment

// Skill indexes the five skill point axes
type Skill int

// Skill point axes, in catalog order
const (
	Strength Skill = iota
	Dexterity
	Intelligence
	Defense
	Agility
)

// NumSkills is the number of skill point axes
const NumSkills = 5

var skillNames = [NumSkills]string{"strength", "dexterity", "intelligence", "defense", "agility"}

// String returns the lower-case axis name
func (s Skill) String() string {
	if s < 0 || int(s) >= NumSkills {
		return "unknown"
	}
	return skillNames[s]
}

// AllSkills returns every axis in index order
func AllSkills() []Skill {
	return []Skill{Strength, Dexterity, Intelligence, Defense, Agility}
}

// StatVector holds one value per skill axis
type StatVector [NumSkills]int

// Max returns the per-axis maximum of v and o
func (v StatVector) Max(o StatVector) StatVector {
	for i := range v {
		if o[i] > v[i] {
			v[i] = o[i]
		}
	}
	return v
}

// Add returns the per-axis sum of v and o
func (v StatVector) Add(o StatVector) StatVector {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Sum totals every axis
func (v StatVector) Sum() int {
	total := 0
	for _, x := range v {
		total += x
	}
	return total
}

// IsZero reports whether every axis is zero
func (v StatVector) IsZero() bool {
	return v == StatVector{}
}

// Element is one of the five elemental damage types. Elements share their
// index with the skill that boosts them.
type Element int

// Elements
const (
	Earth Element = iota
	Thunder
	Water
	Fire
	Air
)

// NumElements is the number of elemental damage types
const NumElements = 5

var elementNames = [NumElements]string{"earth", "thunder", "water", "fire", "air"}

// String returns the lower-case element name
func (e Element) String() string {
	if e < 0 || int(e) >= NumElements {
		return "unknown"
	}
	return elementNames[e]
}

// DamageType indexes weapon damage: neutral followed by the five elements
type DamageType int

// Damage types
const (
	DamageNeutral DamageType = iota
	DamageEarth
	DamageThunder
	DamageWater
	DamageFire
	DamageAir
)

// NumDamageTypes is neutral plus the elements
const NumDamageTypes = 1 + NumElements

// ElementDamage returns the damage type carrying element e
func ElementDamage(e Element) DamageType {
	return DamageType(int(e) + 1)
}
