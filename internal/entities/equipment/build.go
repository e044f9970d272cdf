package equipment

// Build is a gear loadout with at most one item per slot. It is a value:
// With and Without return modified copies and never touch the receiver.
type Build struct {
	slots [NumSlots]*Item
}

// NewBuild creates a build from a slot assignment
func NewBuild(items map[Slot]*Item) Build {
	var b Build
	for slot, item := range items {
		if slot.IsValid() {
			b.slots[slot] = item
		}
	}
	return b
}

// Get returns the item in slot, or nil when the slot is empty
func (b Build) Get(slot Slot) *Item {
	if !slot.IsValid() {
		return nil
	}
	return b.slots[slot]
}

// With returns a copy of b with item placed in slot. A nil item clears it.
func (b Build) With(slot Slot, item *Item) Build {
	if slot.IsValid() {
		b.slots[slot] = item
	}
	return b
}

// Without returns a copy of b with slot cleared
func (b Build) Without(slot Slot) Build {
	return b.With(slot, nil)
}

// Weapon returns the weapon, or nil
func (b Build) Weapon() *Item {
	return b.slots[SlotWeapon]
}

// Items returns the occupied slots' items in slot order
func (b Build) Items() []*Item {
	items := make([]*Item, 0, NumSlots)
	for _, item := range b.slots {
		if item != nil {
			items = append(items, item)
		}
	}
	return items
}

// Occupied returns the occupied slots in slot order
func (b Build) Occupied() []Slot {
	slots := make([]Slot, 0, NumSlots)
	for i, item := range b.slots {
		if item != nil {
			slots = append(slots, Slot(i))
		}
	}
	return slots
}

// IsEmpty reports whether no slot is occupied
func (b Build) IsEmpty() bool {
	return b == Build{}
}

// Equal reports whether both builds reference the same item in every slot
func (b Build) Equal(o Build) bool {
	return b.slots == o.slots
}

// IDs maps occupied slot names to item IDs
func (b Build) IDs() map[string]string {
	ids := make(map[string]string, NumSlots)
	for i, item := range b.slots {
		if item != nil {
			ids[Slot(i).String()] = item.ID
		}
	}
	return ids
}
