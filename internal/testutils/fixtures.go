package testutils

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
)

// TestRunID is the default run identifier for test fixtures
const TestRunID = "run-test-001"

// CreateTestItem creates a level 1 Normal item with no stats
func CreateTestItem(id string, category equipment.Category) *equipment.Item {
	item := &equipment.Item{
		ID:       id,
		Category: category,
		Tier:     equipment.TierNormal,
		Level:    1,
	}
	if category.IsWeapon() {
		item.AttackSpeed = equipment.AttackSpeedNormal
		item.Damage[equipment.DamageNeutral] = equipment.DamageRange{Min: 10, Max: 20}
	}
	return item
}

func title(c equipment.Category) string {
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// CreateTestCatalog returns a small catalog with three pieces for every
// armor and accessory category and two for every weapon category.
// Item IDs are unique.
func CreateTestCatalog() []*equipment.Item {
	var items []*equipment.Item

	armor := []equipment.Category{
		equipment.CategoryHelmet, equipment.CategoryChestplate, equipment.CategoryLeggings,
		equipment.CategoryBoots, equipment.CategoryRing, equipment.CategoryBracelet,
		equipment.CategoryNecklace,
	}
	for _, c := range armor {
		vigor := CreateTestItem(fmt.Sprintf("%s of Vigor", title(c)), c)
		vigor.Tier = equipment.TierUnique
		vigor.Level = 20
		vigor.Health = 300

		might := CreateTestItem(fmt.Sprintf("%s of Might", title(c)), c)
		might.Tier = equipment.TierRare
		might.Level = 60
		might.Health = 150
		might.DamageBonus = 15
		might.Requirements = equipment.StatVector{30, 0, 0, 0, 0}
		might.Bonuses = equipment.StatVector{5, 0, 0, 0, 0}

		ruin := CreateTestItem(fmt.Sprintf("%s of Ruin", title(c)), c)
		ruin.Tier = equipment.TierLegendary
		ruin.Level = 90
		ruin.Health = 800
		ruin.HealthBonus = 200
		ruin.Requirements = equipment.StatVector{0, 0, 0, 80, 60}

		items = append(items, vigor, might, ruin)
	}

	for _, c := range equipment.WeaponCategories() {
		plain := CreateTestItem(fmt.Sprintf("Plain %s", title(c)), c)
		plain.Tier = equipment.TierUnique
		plain.Level = 30
		plain.Damage[equipment.DamageNeutral] = equipment.DamageRange{Min: 20, Max: 40}

		quake := CreateTestItem(fmt.Sprintf("Quake %s", title(c)), c)
		quake.Tier = equipment.TierFabled
		quake.Level = 70
		quake.AttackSpeed = equipment.AttackSpeedFast
		quake.Damage[equipment.DamageNeutral] = equipment.DamageRange{}
		quake.Damage[equipment.DamageEarth] = equipment.DamageRange{Min: 50, Max: 80}
		quake.Requirements = equipment.StatVector{40, 0, 0, 0, 0}

		items = append(items, plain, quake)
	}

	return items
}
