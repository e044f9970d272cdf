package search

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
)

// Sampler draws a candidate item for a category
type Sampler interface {
	Sample(category equipment.Category, src random.Source) (*equipment.Item, error)
}

// Neighbor returns b with one uniformly chosen slot resampled. The weapon
// slot draws from the class's weapon category, or from a random weapon
// category when class is empty. When nothing can be drawn the slot is
// cleared instead.
func Neighbor(b equipment.Build, pool Sampler, class equipment.Class, src random.Source, logger *slog.Logger) equipment.Build {
	slot := equipment.Slot(src.IntN(equipment.NumSlots))

	category, ok := slot.Category()
	if !ok {
		category = weaponCategory(class, src)
	}

	item, err := pool.Sample(category, src)
	if err != nil {
		logger.Warn("no candidate for slot, clearing it",
			"slot", slot.String(),
			"category", string(category),
			"error", err)
		return b.Without(slot)
	}
	return b.With(slot, item)
}

func weaponCategory(class equipment.Class, src random.Source) equipment.Category {
	if weapon, ok := class.Weapon(); ok {
		return weapon
	}
	weapons := equipment.WeaponCategories()
	return weapons[src.IntN(len(weapons))]
}
