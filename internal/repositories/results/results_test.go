package results_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/results"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/testutils"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type repositorySuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.Fixed
	repo    results.Repository
	newRepo func(clk clock.Clock) (results.Repository, func())
	cleanup func()
}

func (s *repositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(testNow)
	s.repo, s.cleanup = s.newRepo(s.clock)
}

func (s *repositorySuite) TearDownTest() {
	s.cleanup()
}

func (s *repositorySuite) record(runID string) *results.Record {
	helmet := testutils.CreateTestItem("Helmet of Vigor", equipment.CategoryHelmet)
	weapon := testutils.CreateTestItem("Plain Wand", equipment.CategoryWand)

	r := &results.Record{
		RunID:      runID,
		Preset:     "ehp",
		Level:      106,
		Class:      equipment.ClassMage,
		Strict:     true,
		Utility:    1234.5,
		Iterations: 10000,
		Accepted:   4200,
		Seed:       7,
		Restarts:   1,
		Duration:   2 * time.Second,
	}
	r.SetBuild(equipment.NewBuild(map[equipment.Slot]*equipment.Item{
		equipment.SlotHelmet: helmet,
		equipment.SlotWeapon: weapon,
	}))
	return r
}

func (s *repositorySuite) TestCreateAndGet() {
	in := s.record("run_1")

	created, err := s.repo.Create(s.ctx, results.CreateInput{Record: in, TTL: time.Hour})
	s.Require().NoError(err)
	s.Assert().True(created.Record.CreatedAt.Equal(testNow))
	s.Assert().True(created.Record.ExpiresAt.Equal(testNow.Add(time.Hour)))
	s.Assert().True(in.CreatedAt.IsZero(), "input record must not be modified")

	got, err := s.repo.Get(s.ctx, results.GetInput{RunID: "run_1"})
	s.Require().NoError(err)

	rec := got.Record
	s.Assert().Equal("run_1", rec.RunID)
	s.Assert().Equal("ehp", rec.Preset)
	s.Assert().Equal(106, rec.Level)
	s.Assert().Equal(equipment.ClassMage, rec.Class)
	s.Assert().True(rec.Strict)
	s.Assert().Equal(1234.5, rec.Utility)
	s.Assert().Equal(uint64(7), rec.Seed)
	s.Assert().Equal(2*time.Second, rec.Duration)
	s.Assert().True(rec.ExpiresAt.Equal(testNow.Add(time.Hour)))

	b := rec.Build()
	s.Assert().Equal(map[string]string{
		"helmet": "Helmet of Vigor",
		"weapon": "Plain Wand",
	}, b.IDs())
	s.Assert().Equal(in.Items[equipment.SlotWeapon].Damage, b.Weapon().Damage)
}

func (s *repositorySuite) TestDefaultTTL() {
	created, err := s.repo.Create(s.ctx, results.CreateInput{Record: s.record("run_2")})
	s.Require().NoError(err)
	s.Assert().True(created.Record.ExpiresAt.Equal(testNow.Add(results.DefaultTTL)))
}

func (s *repositorySuite) TestGetExpired() {
	_, err := s.repo.Create(s.ctx, results.CreateInput{Record: s.record("run_3"), TTL: time.Minute})
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, results.GetInput{RunID: "run_3"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *repositorySuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, results.GetInput{RunID: "nope"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal("nope", errors.GetMeta(err)["run_id"])
}

func (s *repositorySuite) TestInvalidInput() {
	testCases := []struct {
		name string
		call func() error
	}{
		{name: "nil record", call: func() error {
			_, err := s.repo.Create(s.ctx, results.CreateInput{})
			return err
		}},
		{name: "empty run id", call: func() error {
			_, err := s.repo.Create(s.ctx, results.CreateInput{Record: &results.Record{}})
			return err
		}},
		{name: "negative ttl", call: func() error {
			_, err := s.repo.Create(s.ctx, results.CreateInput{Record: s.record("x"), TTL: -time.Second})
			return err
		}},
		{name: "get without id", call: func() error {
			_, err := s.repo.Get(s.ctx, results.GetInput{})
			return err
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.call()
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &repositorySuite{
		newRepo: func(clk clock.Clock) (results.Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			repo, err := results.NewRedisRepository(&results.Config{Client: client, Clock: clk})
			if err != nil {
				t.Fatalf("failed to create repository: %v", err)
			}
			return repo, cleanup
		},
	})
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &repositorySuite{
		newRepo: func(clk clock.Clock) (results.Repository, func()) {
			return results.NewInMemory(clk, 0), func() {}
		},
	})
}

func TestRedisStoresTTL(t *testing.T) {
	var mr *miniredis.Miniredis
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(m *miniredis.Miniredis) {
		mr = m
	})
	defer cleanup()

	repo, err := results.NewRedisRepository(&results.Config{
		Client: client,
		Clock:  clock.NewFixed(testNow),
		TTL:    30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	if _, err := repo.Create(context.Background(), results.CreateInput{Record: &results.Record{RunID: "ttl"}}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := mr.TTL("result:ttl"); got != 30*time.Minute {
		t.Fatalf("expected 30m ttl, got %v", got)
	}

	mr.FastForward(31 * time.Minute)
	_, err = repo.Get(context.Background(), results.GetInput{RunID: "ttl"})
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not found after expiry, got %v", err)
	}
}

func TestRedisCorruptRecord(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		if err := mr.Set("result:bad", "{"); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	})
	defer cleanup()

	repo, err := results.NewRedisRepository(&results.Config{Client: client, Clock: clock.New()})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	_, err = repo.Get(context.Background(), results.GetInput{RunID: "bad"})
	if !errors.IsDataLoss(err) {
		t.Fatalf("expected data loss, got %v", err)
	}
}

func TestNewRedisRepositoryValidation(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	cfgs := map[string]*results.Config{
		"nil":       nil,
		"no client": {Clock: clock.New()},
		"no clock":  {Client: client},
		"bad ttl":   {Client: client, Clock: clock.New(), TTL: -time.Second},
	}
	for name, cfg := range cfgs {
		if _, err := results.NewRedisRepository(cfg); !errors.IsInvalidArgument(err) {
			t.Errorf("%s: expected invalid argument, got %v", name, err)
		}
	}
}
