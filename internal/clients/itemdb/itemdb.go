// Package itemdb parses the item database dumps the optimizer consumes: the
// item catalog itself and the WynnBuilder name to numeric ID table.
package itemdb

import (
	"os"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

// Catalog is a parsed item database
type Catalog struct {
	Items []*equipment.Item

	// Version and Timestamp echo the dump's request block
	Version   string
	Timestamp int64

	// Skipped counts entries whose type is not a build slot, such as tomes
	Skipped int
}

var skillFields = [equipment.NumSkills]string{"strength", "dexterity", "intelligence", "defense", "agility"}

var bonusFields = [equipment.NumSkills]string{
	"strengthPoints", "dexterityPoints", "intelligencePoints", "defensePoints", "agilityPoints",
}

var elementalBonusFields = [equipment.NumElements]string{
	"bonusEarthDamage", "bonusThunderDamage", "bonusWaterDamage", "bonusFireDamage", "bonusAirDamage",
}

var damageFields = [equipment.NumDamageTypes]string{
	"damage", "earthDamage", "thunderDamage", "waterDamage", "fireDamage", "airDamage",
}

// LoadFile reads and parses an item database from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeNotFound, "failed to read item database %s", path)
	}
	return Parse(data)
}

// Parse decodes an item database of the form {"items": [...], "request": {...}}.
// Missing numeric fields read as zero and missing damage strings as 0-0.
func Parse(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.DataLoss("item database is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	items := root.Get("items")
	if !items.IsArray() {
		return nil, errors.DataLoss("item database has no items array")
	}

	catalog := &Catalog{
		Version:   root.Get("request.version").String(),
		Timestamp: root.Get("request.timestamp").Int(),
	}

	var parseErr error
	items.ForEach(func(key, v gjson.Result) bool {
		item, ok, err := parseItem(v)
		if err != nil {
			parseErr = errors.Wrapf(err, "item %d", key.Int()).
				WithMeta("index", key.Int())
			return false
		}
		if !ok {
			catalog.Skipped++
			return true
		}
		catalog.Items = append(catalog.Items, item)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return catalog, nil
}

// parseItem converts one entry. It reports false for entries that do not
// fit a build slot.
func parseItem(v gjson.Result) (*equipment.Item, bool, error) {
	name := v.Get("name").String()
	if name == "" {
		return nil, false, errors.DataLoss("item has no name")
	}

	typeName := v.Get("type").String()
	if typeName == "" {
		typeName = v.Get("accessoryType").String()
	}
	category, ok := equipment.CategoryFromString(typeName)
	if !ok {
		return nil, false, nil
	}

	item := &equipment.Item{
		ID:                    name,
		DisplayName:           v.Get("displayName").String(),
		Category:              category,
		Tier:                  equipment.Tier(v.Get("tier").String()),
		Level:                 int(v.Get("level").Int()),
		Health:                int(v.Get("health").Int()),
		HealthBonus:           int(v.Get("healthBonus").Int()),
		HealthRegen:           int(v.Get("healthRegen").Int()),
		HealthRegenRaw:        int(v.Get("healthRegenRaw").Int()),
		DamageBonus:           int(v.Get("damageBonus").Int()),
		DamageBonusRaw:        int(v.Get("damageBonusRaw").Int()),
		SpellDamage:           int(v.Get("spellDamage").Int()),
		SpellDamageRaw:        int(v.Get("spellDamageRaw").Int()),
		RainbowSpellDamageRaw: int(v.Get("rainbowSpellDamageRaw").Int()),
		Poison:                int(v.Get("poison").Int()),
	}

	if class := v.Get("classRequirement").String(); class != "" {
		c, ok := equipment.ClassFromString(class)
		if !ok {
			return nil, false, errors.DataLossf("item %q has unknown class requirement %q", name, class).
				WithMeta("item", name)
		}
		item.ClassRequirement = c
	}

	for d := 0; d < equipment.NumSkills; d++ {
		item.Requirements[d] = int(v.Get(skillFields[d]).Int())
		item.Bonuses[d] = int(v.Get(bonusFields[d]).Int())
	}
	for e := 0; e < equipment.NumElements; e++ {
		item.ElementalDamageBonus[e] = int(v.Get(elementalBonusFields[e]).Int())
	}

	if !category.IsWeapon() {
		return item, true, nil
	}

	for t := 0; t < equipment.NumDamageTypes; t++ {
		field := v.Get(damageFields[t])
		if !field.Exists() || field.Type == gjson.Null {
			continue
		}
		r, err := equipment.ParseDamageRange(field.String())
		if err != nil {
			return nil, false, errors.Wrapf(err, "item %q has a malformed %s", name, damageFields[t])
		}
		item.Damage[t] = r
	}

	item.AttackSpeed = equipment.AttackSpeed(v.Get("attackSpeed").String())
	if !item.AttackSpeed.IsValid() {
		return nil, false, errors.DataLossf("weapon %q has unknown attack speed %q", name, item.AttackSpeed).
			WithMeta("item", name)
	}

	return item, true, nil
}

// LoadIDFile reads and parses a WynnBuilder ID table from disk
func LoadIDFile(path string) (map[string]int, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeNotFound, "failed to read id table %s", path)
	}
	return ParseIDs(data)
}

// ParseIDs decodes a WynnBuilder ID table: an array of {"name", "id"} objects
func ParseIDs(data []byte) (map[string]int, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.DataLoss("id table is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.DataLoss("id table must be an array")
	}

	ids := make(map[string]int)
	var parseErr error
	root.ForEach(func(key, v gjson.Result) bool {
		name := v.Get("name")
		id := v.Get("id")
		if !name.Exists() || id.Type != gjson.Number {
			parseErr = errors.DataLossf("id table entry %d needs a name and a numeric id", key.Int())
			return false
		}
		ids[name.String()] = int(id.Int())
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return ids, nil
}
