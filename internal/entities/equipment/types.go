package equipment

import "strings"

// Category groups items that compete for the same slot. Rings share one
// category between both ring slots and each weapon subtype is its own category.
type Category string

// Define all item categories
const (
	CategoryHelmet     Category = "helmet"
	CategoryChestplate Category = "chestplate"
	CategoryLeggings   Category = "leggings"
	CategoryBoots      Category = "boots"
	CategoryRing       Category = "ring"
	CategoryBracelet   Category = "bracelet"
	CategoryNecklace   Category = "necklace"
	CategoryBow        Category = "bow"
	CategoryWand       Category = "wand"
	CategorySpear      Category = "spear"
	CategoryDagger     Category = "dagger"
	CategoryRelik      Category = "relik"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	switch c {
	case CategoryHelmet, CategoryChestplate, CategoryLeggings, CategoryBoots,
		CategoryRing, CategoryBracelet, CategoryNecklace:
		return true
	default:
		return c.IsWeapon()
	}
}

// IsWeapon reports whether the category is a weapon subtype
func (c Category) IsWeapon() bool {
	switch c {
	case CategoryBow, CategoryWand, CategorySpear, CategoryDagger, CategoryRelik:
		return true
	default:
		return false
	}
}

// WeaponCategories returns the five weapon subtypes
func WeaponCategories() []Category {
	return []Category{CategoryBow, CategoryWand, CategorySpear, CategoryDagger, CategoryRelik}
}

// CategoryFromString converts a catalog type name such as "Helmet" or "Ring".
// Returns the category and true if valid, empty category and false if invalid.
func CategoryFromString(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c, true
	}
	return "", false
}

// Class is a character class. Each class wields exactly one weapon category.
type Class string

// Define all classes
const (
	ClassArcher   Class = "Archer"
	ClassMage     Class = "Mage"
	ClassWarrior  Class = "Warrior"
	ClassAssassin Class = "Assassin"
	ClassShaman   Class = "Shaman"
)

var classWeapons = map[Class]Category{
	ClassArcher:   CategoryBow,
	ClassMage:     CategoryWand,
	ClassWarrior:  CategorySpear,
	ClassAssassin: CategoryDagger,
	ClassShaman:   CategoryRelik,
}

// String returns the string representation of the class
func (c Class) String() string {
	return string(c)
}

// IsValid checks if the class is known
func (c Class) IsValid() bool {
	_, ok := classWeapons[c]
	return ok
}

// Weapon returns the weapon category bound to the class
func (c Class) Weapon() (Category, bool) {
	w, ok := classWeapons[c]
	return w, ok
}

// AllClasses returns every class
func AllClasses() []Class {
	return []Class{ClassArcher, ClassMage, ClassWarrior, ClassAssassin, ClassShaman}
}

// ClassForWeapon returns the class that wields a weapon category
func ClassForWeapon(c Category) (Class, bool) {
	for class, weapon := range classWeapons {
		if weapon == c {
			return class, true
		}
	}
	return "", false
}

// ClassFromString converts a class name, ignoring case.
// Returns the class and true if valid, empty class and false if invalid.
func ClassFromString(s string) (Class, bool) {
	for _, c := range AllClasses() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// Tier is the item rarity
type Tier string

// Define all tiers
const (
	TierNormal    Tier = "Normal"
	TierUnique    Tier = "Unique"
	TierRare      Tier = "Rare"
	TierLegendary Tier = "Legendary"
	TierFabled    Tier = "Fabled"
	TierMythic    Tier = "Mythic"
	TierSet       Tier = "Set"
)

// IsValid checks if the tier is known
func (t Tier) IsValid() bool {
	switch t {
	case TierNormal, TierUnique, TierRare, TierLegendary, TierFabled, TierMythic, TierSet:
		return true
	default:
		return false
	}
}

// AttackSpeed is a weapon's attack speed bracket
type AttackSpeed string

// Define all attack speeds
const (
	AttackSpeedSuperSlow AttackSpeed = "SUPER_SLOW"
	AttackSpeedVerySlow  AttackSpeed = "VERY_SLOW"
	AttackSpeedSlow      AttackSpeed = "SLOW"
	AttackSpeedNormal    AttackSpeed = "NORMAL"
	AttackSpeedFast      AttackSpeed = "FAST"
	AttackSpeedVeryFast  AttackSpeed = "VERY_FAST"
	AttackSpeedSuperFast AttackSpeed = "SUPER_FAST"
)

var attackSpeedMultipliers = map[AttackSpeed]float64{
	AttackSpeedSuperSlow: 0.51,
	AttackSpeedVerySlow:  0.83,
	AttackSpeedSlow:      1.5,
	AttackSpeedNormal:    2.05,
	AttackSpeedFast:      2.5,
	AttackSpeedVeryFast:  3.1,
	AttackSpeedSuperFast: 4.3,
}

// IsValid checks if the attack speed is known
func (a AttackSpeed) IsValid() bool {
	_, ok := attackSpeedMultipliers[a]
	return ok
}

// Multiplier returns the hits-per-second multiplier, or 0 for unknown speeds
func (a AttackSpeed) Multiplier() float64 {
	return attackSpeedMultipliers[a]
}

// Slot is one of the nine build slots
type Slot int

// Define all build slots
const (
	SlotHelmet Slot = iota
	SlotChestplate
	SlotLeggings
	SlotBoots
	SlotRing1
	SlotRing2
	SlotBracelet
	SlotNecklace
	SlotWeapon
)

// NumSlots is the number of build slots
const NumSlots = 9

var slotNames = [NumSlots]string{
	"helmet", "chestplate", "leggings", "boots", "ring1", "ring2", "bracelet", "necklace", "weapon",
}

// slotCategories maps armor and accessory slots to their category. The
// weapon slot has no fixed category.
var slotCategories = [NumSlots]Category{
	CategoryHelmet, CategoryChestplate, CategoryLeggings, CategoryBoots,
	CategoryRing, CategoryRing, CategoryBracelet, CategoryNecklace, "",
}

// String returns the slot name
func (s Slot) String() string {
	if !s.IsValid() {
		return "unknown"
	}
	return slotNames[s]
}

// IsValid checks if the slot is in range
func (s Slot) IsValid() bool {
	return s >= 0 && int(s) < NumSlots
}

// Category returns the fixed category for a non-weapon slot. The weapon
// slot reports false.
func (s Slot) Category() (Category, bool) {
	if !s.IsValid() || s == SlotWeapon {
		return "", false
	}
	return slotCategories[s], true
}

// AllSlots returns a slice of all slots in build order
func AllSlots() []Slot {
	return []Slot{
		SlotHelmet,
		SlotChestplate,
		SlotLeggings,
		SlotBoots,
		SlotRing1,
		SlotRing2,
		SlotBracelet,
		SlotNecklace,
		SlotWeapon,
	}
}

// ArmorSlots returns the eight non-weapon slots in build order
func ArmorSlots() []Slot {
	return AllSlots()[:SlotWeapon]
}

// SlotFromString converts a slot name to a Slot
// Returns the slot and true if valid, -1 and false if invalid
func SlotFromString(s string) (Slot, bool) {
	for i, name := range slotNames {
		if name == s {
			return Slot(i), true
		}
	}
	return -1, false
}
