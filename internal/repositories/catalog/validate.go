package catalog

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

func validatePut(input *PutInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	seen := make(map[string]bool, len(input.Items))
	for i, item := range input.Items {
		if item == nil {
			return errors.InvalidArgumentf("item %d is nil", i)
		}
		if item.ID == "" {
			return errors.InvalidArgumentf("item %d has no ID", i)
		}
		if seen[item.ID] {
			return errors.InvalidArgumentf("duplicate item %q", item.ID).WithMeta("item", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

func decodeItem(value string) (*equipment.Item, error) {
	var item equipment.Item
	if err := json.Unmarshal([]byte(value), &item); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "corrupt item record")
	}
	return &item, nil
}
