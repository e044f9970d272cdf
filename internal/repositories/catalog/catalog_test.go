package catalog_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/testutils"
)

// repositorySuite runs the same behavior checks against every implementation
type repositorySuite struct {
	suite.Suite
	ctx     context.Context
	repo    catalog.Repository
	newRepo func() (catalog.Repository, func())
	cleanup func()
}

func (s *repositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.cleanup = s.newRepo()
}

func (s *repositorySuite) TearDownTest() {
	s.cleanup()
}

func (s *repositorySuite) TestListBeforePut() {
	out, err := s.repo.List(s.ctx, &catalog.ListInput{})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Nil(out)
}

func (s *repositorySuite) TestRoundTrip() {
	items := testutils.CreateTestCatalog()
	ids := map[string]int{"Helmet of Vigor": 12, "Plain Bow": 3000}

	put, err := s.repo.Put(s.ctx, &catalog.PutInput{Items: items, WynnBuilderIDs: ids, Version: "2.0.1"})
	s.Require().NoError(err)
	s.Assert().Equal(len(items), put.Stored)

	out, err := s.repo.List(s.ctx, &catalog.ListInput{})
	s.Require().NoError(err)
	s.Assert().Equal("2.0.1", out.Version)
	s.Assert().Equal(ids, out.WynnBuilderIDs)
	s.Require().Len(out.Items, len(items))

	for i := 1; i < len(out.Items); i++ {
		s.Assert().Less(out.Items[i-1].ID, out.Items[i].ID)
	}

	byID := make(map[string]*equipment.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	for _, got := range out.Items {
		s.Assert().Equal(byID[got.ID], got)
	}
}

func (s *repositorySuite) TestPutReplaces() {
	first := []*equipment.Item{testutils.CreateTestItem("Old Cap", equipment.CategoryHelmet)}
	second := []*equipment.Item{testutils.CreateTestItem("New Cap", equipment.CategoryHelmet)}

	_, err := s.repo.Put(s.ctx, &catalog.PutInput{Items: first, WynnBuilderIDs: map[string]int{"Old Cap": 1}, Version: "1"})
	s.Require().NoError(err)
	_, err = s.repo.Put(s.ctx, &catalog.PutInput{Items: second, Version: "2"})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, &catalog.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Items, 1)
	s.Assert().Equal("New Cap", out.Items[0].ID)
	s.Assert().Empty(out.WynnBuilderIDs)
	s.Assert().Equal("2", out.Version)
}

func (s *repositorySuite) TestPutValidation() {
	cap1 := testutils.CreateTestItem("Cap", equipment.CategoryHelmet)

	testCases := []struct {
		name  string
		input *catalog.PutInput
	}{
		{name: "nil input", input: nil},
		{name: "nil item", input: &catalog.PutInput{Items: []*equipment.Item{nil}}},
		{name: "unnamed item", input: &catalog.PutInput{Items: []*equipment.Item{{Category: equipment.CategoryRing}}}},
		{name: "duplicate", input: &catalog.PutInput{Items: []*equipment.Item{cap1, cap1}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Put(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &repositorySuite{
		newRepo: func() (catalog.Repository, func()) {
			return catalog.NewInMemory(), func() {}
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &repositorySuite{
		newRepo: func() (catalog.Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			repo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
			if err != nil {
				t.Fatalf("failed to create repository: %v", err)
			}
			return repo, cleanup
		},
	})
}

func TestRedisCorruptRecord(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		mr.HSet("catalog:items", "Broken", "{not json")
		if err := mr.Set("catalog:version", "1"); err != nil {
			t.Fatalf("failed to seed version: %v", err)
		}
	})
	defer cleanup()

	repo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	_, err = repo.List(context.Background(), &catalog.ListInput{})
	if !errors.IsDataLoss(err) {
		t.Fatalf("expected data loss error, got %v", err)
	}
}

func TestNewRedisValidation(t *testing.T) {
	_, err := catalog.NewRedis(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	_, err = catalog.NewRedis(&catalog.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
