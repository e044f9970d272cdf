package rules

import (
	"sort"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
)

// NextPermutation returns the lexicographically next permutation of a and
// true, or nil and false when a is already the last one. a is not modified.
func NextPermutation(a []int) ([]int, bool) {
	n := len(a)
	if n < 2 {
		return nil, false
	}

	j := n - 2
	for j >= 0 && a[j] >= a[j+1] {
		j--
	}
	if j < 0 {
		return nil, false
	}

	next := make([]int, n)
	copy(next, a)

	l := n - 1
	for next[j] >= next[l] {
		l--
	}
	next[j], next[l] = next[l], next[j]

	for k, r := j+1, n-1; k < r; k, r = k+1, r-1 {
		next[k], next[r] = next[r], next[k]
	}
	return next, true
}

// equipState tracks points while pieces are put on one at a time
type equipState struct {
	manual equipment.StatVector
	req    equipment.StatVector
	bonus  equipment.StatVector
	budget int
}

// wear puts item on, assigning the fewest extra manual points that let it
// be worn. It reports false when the piece cannot be worn or its
// requirement stops being met afterwards.
func (s *equipState) wear(item *equipment.Item) bool {
	for d := 0; d < equipment.NumSkills; d++ {
		r := item.Requirements[d]

		s.manual[d] = max(s.manual[d], r-s.bonus[d])
		if s.manual[d] > MaxManualPerSkill {
			return false
		}
		if s.manual.Sum() > s.budget {
			return false
		}

		s.req[d] = max(s.req[d], r)
		s.bonus[d] += item.Bonuses[d]

		if s.manual[d]+s.bonus[d] < s.req[d] {
			return false
		}
	}
	return true
}

// CheckEquipOrder equips the armor and accessory slots listed in order, then
// the weapon. It returns true and -1 when every piece can be worn, otherwise
// false and the position in order where equipping failed. A weapon failure
// reports the last position.
func CheckEquipOrder(b equipment.Build, order []equipment.Slot, level int) (bool, int) {
	state := &equipState{budget: LevelToSP(level)}

	for i, slot := range order {
		item := b.Get(slot)
		if item == nil {
			continue
		}
		if !state.wear(item) {
			return false, i
		}
	}

	if weapon := b.Weapon(); weapon != nil && !state.wear(weapon) {
		return false, len(order) - 1
	}
	return true, -1
}

// participatingSlots lists, in ascending order, the armor and accessory
// slots whose item can affect equip-order feasibility
func participatingSlots(b equipment.Build) []int {
	slots := make([]int, 0, equipment.NumSlots-1)
	for _, slot := range equipment.ArmorSlots() {
		if item := b.Get(slot); item != nil && item.ParticipatesInEquipOrder() {
			slots = append(slots, int(slot))
		}
	}
	return slots
}

func toSlots(order []int) []equipment.Slot {
	slots := make([]equipment.Slot, len(order))
	for i, s := range order {
		slots[i] = equipment.Slot(s)
	}
	return slots
}

// skipPrefix advances past every permutation that shares order[:invalidAt+1]
func skipPrefix(order []int, invalidAt int) ([]int, bool) {
	if invalidAt >= len(order)-2 {
		return NextPermutation(order)
	}

	pruned := make([]int, len(order))
	copy(pruned, order)
	sort.Sort(sort.Reverse(sort.IntSlice(pruned[invalidAt+1:])))
	return NextPermutation(pruned)
}

// StrictCheck searches for an equip order under which every piece can be
// worn. Orders are visited lexicographically; when a piece fails at
// position i, all orders sharing the first i+1 pieces are skipped.
func StrictCheck(b equipment.Build, level int) bool {
	order := participatingSlots(b)

	ok, invalidAt := CheckEquipOrder(b, toSlots(order), level)
	for !ok {
		var more bool
		order, more = skipPrefix(order, invalidAt)
		if !more {
			return false
		}
		ok, invalidAt = CheckEquipOrder(b, toSlots(order), level)
	}
	return true
}
