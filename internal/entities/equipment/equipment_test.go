package equipment_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

type EquipmentTestSuite struct {
	suite.Suite
}

func TestEquipmentSuite(t *testing.T) {
	suite.Run(t, new(EquipmentTestSuite))
}

func (s *EquipmentTestSuite) TestParseDamageRange() {
	testCases := []struct {
		name    string
		input   string
		want    equipment.DamageRange
		wantErr bool
	}{
		{name: "range", input: "12-30", want: equipment.DamageRange{Min: 12, Max: 30}},
		{name: "zero", input: "0-0", want: equipment.DamageRange{}},
		{name: "empty", input: "", wantErr: true},
		{name: "single number", input: "12", wantErr: true},
		{name: "too many dashes", input: "1-2-3", wantErr: true},
		{name: "not a number", input: "a-b", wantErr: true},
		{name: "missing half", input: "12-", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := equipment.ParseDamageRange(tc.input)
			if tc.wantErr {
				s.Require().Error(err)
				s.Assert().True(errors.IsDataLoss(err))
				return
			}
			s.Require().NoError(err)
			s.Assert().Equal(tc.want, got)
		})
	}
}

func (s *EquipmentTestSuite) TestDamageRangeAverage() {
	s.Assert().InDelta(21.0, equipment.DamageRange{Min: 12, Max: 30}.Average(), 1e-9)
}

func (s *EquipmentTestSuite) TestClassWeaponBijection() {
	seen := make(map[equipment.Category]bool)
	for _, class := range equipment.AllClasses() {
		weapon, ok := class.Weapon()
		s.Require().True(ok)
		s.Assert().True(weapon.IsWeapon())
		s.Assert().False(seen[weapon], "weapon %s bound twice", weapon)
		seen[weapon] = true

		back, ok := equipment.ClassForWeapon(weapon)
		s.Require().True(ok)
		s.Assert().Equal(class, back)
	}
	s.Assert().Len(seen, len(equipment.WeaponCategories()))

	_, ok := equipment.ClassForWeapon(equipment.CategoryHelmet)
	s.Assert().False(ok)
}

func (s *EquipmentTestSuite) TestFromString() {
	class, ok := equipment.ClassFromString("archer")
	s.Assert().True(ok)
	s.Assert().Equal(equipment.ClassArcher, class)

	_, ok = equipment.ClassFromString("paladin")
	s.Assert().False(ok)

	cat, ok := equipment.CategoryFromString("Ring")
	s.Assert().True(ok)
	s.Assert().Equal(equipment.CategoryRing, cat)

	slot, ok := equipment.SlotFromString("ring2")
	s.Assert().True(ok)
	s.Assert().Equal(equipment.SlotRing2, slot)

	_, ok = equipment.SlotFromString("offhand")
	s.Assert().False(ok)
}

func (s *EquipmentTestSuite) TestSlotCategories() {
	ring1, ok := equipment.SlotRing1.Category()
	s.Require().True(ok)
	ring2, ok := equipment.SlotRing2.Category()
	s.Require().True(ok)
	s.Assert().Equal(equipment.CategoryRing, ring1)
	s.Assert().Equal(ring1, ring2)

	_, ok = equipment.SlotWeapon.Category()
	s.Assert().False(ok)

	s.Assert().Len(equipment.AllSlots(), equipment.NumSlots)
	s.Assert().Len(equipment.ArmorSlots(), equipment.NumSlots-1)
}

func (s *EquipmentTestSuite) TestBuildIsAValue() {
	helmet := &equipment.Item{ID: "Cap", Category: equipment.CategoryHelmet}
	other := &equipment.Item{ID: "Hood", Category: equipment.CategoryHelmet}

	var empty equipment.Build
	s.Assert().True(empty.IsEmpty())

	withHelmet := empty.With(equipment.SlotHelmet, helmet)
	s.Assert().True(empty.IsEmpty())
	s.Assert().Equal(helmet, withHelmet.Get(equipment.SlotHelmet))

	swapped := withHelmet.With(equipment.SlotHelmet, other)
	s.Assert().Equal(helmet, withHelmet.Get(equipment.SlotHelmet))
	s.Assert().Equal(other, swapped.Get(equipment.SlotHelmet))

	cleared := swapped.Without(equipment.SlotHelmet)
	s.Assert().True(cleared.IsEmpty())
	s.Assert().False(swapped.Equal(cleared))
}

func (s *EquipmentTestSuite) TestBuildItems() {
	ring := &equipment.Item{ID: "Band", Category: equipment.CategoryRing}
	bow := &equipment.Item{ID: "Bow", Category: equipment.CategoryBow}

	b := equipment.NewBuild(map[equipment.Slot]*equipment.Item{
		equipment.SlotWeapon: bow,
		equipment.SlotRing1:  ring,
		equipment.SlotRing2:  ring,
	})

	s.Assert().Equal([]*equipment.Item{ring, ring, bow}, b.Items())
	s.Assert().Equal([]equipment.Slot{equipment.SlotRing1, equipment.SlotRing2, equipment.SlotWeapon}, b.Occupied())
	s.Assert().Equal(bow, b.Weapon())
	s.Assert().Equal(map[string]string{"ring1": "Band", "ring2": "Band", "weapon": "Bow"}, b.IDs())
}

func (s *EquipmentTestSuite) TestParticipatesInEquipOrder() {
	s.Assert().False((&equipment.Item{}).ParticipatesInEquipOrder())
	s.Assert().True((&equipment.Item{Requirements: equipment.StatVector{0, 0, 10, 0, 0}}).ParticipatesInEquipOrder())
	s.Assert().True((&equipment.Item{Bonuses: equipment.StatVector{0, -3, 0, 0, 0}}).ParticipatesInEquipOrder())
}

func (s *EquipmentTestSuite) TestStatVector() {
	a := equipment.StatVector{1, 5, 0, 3, 0}
	b := equipment.StatVector{2, 1, 0, 3, 4}

	s.Assert().Equal(equipment.StatVector{2, 5, 0, 3, 4}, a.Max(b))
	s.Assert().Equal(equipment.StatVector{3, 6, 0, 6, 4}, a.Add(b))
	s.Assert().Equal(9, a.Sum())
	s.Assert().Equal(equipment.StatVector{1, 5, 0, 3, 0}, a)
}

func (s *EquipmentTestSuite) TestAttackSpeed() {
	s.Assert().InDelta(2.05, equipment.AttackSpeedNormal.Multiplier(), 1e-9)
	s.Assert().InDelta(4.3, equipment.AttackSpeedSuperFast.Multiplier(), 1e-9)
	s.Assert().False(equipment.AttackSpeed("LUDICROUS").IsValid())
	s.Assert().Zero(equipment.AttackSpeed("LUDICROUS").Multiplier())
}
