package search_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/gearpool"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
	randommock "github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random/mock"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/search"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/testutils"
)

// stubSampler returns a fixed item or error and records requested categories
type stubSampler struct {
	item       *equipment.Item
	err        error
	categories []equipment.Category
}

func (s *stubSampler) Sample(c equipment.Category, _ random.Source) (*equipment.Item, error) {
	s.categories = append(s.categories, c)
	return s.item, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type NeighborTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	src    *randommock.MockSource
	pool   *gearpool.Pool
	logger *slog.Logger
}

func TestNeighborSuite(t *testing.T) {
	suite.Run(t, new(NeighborTestSuite))
}

func (s *NeighborTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.src = randommock.NewMockSource(s.ctrl)
	s.logger = discardLogger()

	pool, err := gearpool.New(testutils.CreateTestCatalog())
	s.Require().NoError(err)
	s.pool = pool
}

func (s *NeighborTestSuite) TestArmorSlotUsesStaticCategory() {
	sampler := &stubSampler{item: testutils.CreateTestItem("Band", equipment.CategoryRing)}
	s.src.EXPECT().IntN(equipment.NumSlots).Return(int(equipment.SlotRing2))

	next := search.Neighbor(equipment.Build{}, sampler, "", s.src, s.logger)

	s.Assert().Equal([]equipment.Category{equipment.CategoryRing}, sampler.categories)
	s.Assert().Equal(sampler.item, next.Get(equipment.SlotRing2))
	s.Assert().Len(next.Items(), 1)
}

func (s *NeighborTestSuite) TestWeaponWithoutClassPicksRandomCategory() {
	sampler := &stubSampler{item: testutils.CreateTestItem("Pike", equipment.CategorySpear)}
	gomock.InOrder(
		s.src.EXPECT().IntN(equipment.NumSlots).Return(int(equipment.SlotWeapon)),
		s.src.EXPECT().IntN(5).Return(2),
	)

	next := search.Neighbor(equipment.Build{}, sampler, "", s.src, s.logger)

	s.Assert().Equal([]equipment.Category{equipment.CategorySpear}, sampler.categories)
	s.Assert().Equal(sampler.item, next.Weapon())
}

func (s *NeighborTestSuite) TestWeaponWithClassUsesBoundCategory() {
	sampler := &stubSampler{item: testutils.CreateTestItem("Rod", equipment.CategoryWand)}
	s.src.EXPECT().IntN(equipment.NumSlots).Return(int(equipment.SlotWeapon))

	search.Neighbor(equipment.Build{}, sampler, equipment.ClassMage, s.src, s.logger)

	s.Assert().Equal([]equipment.Category{equipment.CategoryWand}, sampler.categories)
}

func (s *NeighborTestSuite) TestSampleFailureClearsSlot() {
	helmet := testutils.CreateTestItem("Cap", equipment.CategoryHelmet)
	boots := testutils.CreateTestItem("Shoes", equipment.CategoryBoots)
	start := equipment.Build{}.With(equipment.SlotHelmet, helmet).With(equipment.SlotBoots, boots)

	sampler := &stubSampler{err: errors.NotFound("no candidates")}
	s.src.EXPECT().IntN(equipment.NumSlots).Return(int(equipment.SlotHelmet))

	next := search.Neighbor(start, sampler, "", s.src, s.logger)

	s.Assert().Nil(next.Get(equipment.SlotHelmet))
	s.Assert().Equal(boots, next.Get(equipment.SlotBoots))
	s.Assert().Equal(helmet, start.Get(equipment.SlotHelmet))
}

func (s *NeighborTestSuite) TestChangesAtMostOneSlot() {
	src := random.NewSeeded(5)
	b := equipment.Build{}
	for i := 0; i < 2000; i++ {
		next := search.Neighbor(b, s.pool, "", src, s.logger)

		changed := 0
		for _, slot := range equipment.AllSlots() {
			if next.Get(slot) != b.Get(slot) {
				changed++
			}
		}
		s.Require().LessOrEqual(changed, 1)
		b = next
	}
}

func (s *NeighborTestSuite) TestClassConstraintHolds() {
	src := random.NewSeeded(99)
	b := equipment.Build{}
	sawWeapon := false
	for i := 0; i < 10000; i++ {
		b = search.Neighbor(b, s.pool, equipment.ClassMage, src, s.logger)
		if w := b.Weapon(); w != nil {
			sawWeapon = true
			s.Require().Equal(equipment.CategoryWand, w.Category)
		}
	}
	s.Assert().True(sawWeapon)
}

func (s *NeighborTestSuite) TestSlotCategoriesMatch() {
	src := random.NewSeeded(7)
	b := equipment.Build{}
	for i := 0; i < 5000; i++ {
		b = search.Neighbor(b, s.pool, "", src, s.logger)
		for _, slot := range b.Occupied() {
			item := b.Get(slot)
			if want, ok := slot.Category(); ok {
				s.Require().Equal(want, item.Category, slot.String())
			} else {
				s.Require().True(item.IsWeapon())
			}
		}
	}
}
