package search_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/gearpool"
	metricsmock "github.com/KirkDiggler/rpg-build-optimizer/internal/metrics/mock"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
	randommock "github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random/mock"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/rules"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/search"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/testutils"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/utility"
)

// fixedValidator answers every check the same way
type fixedValidator struct {
	reason rules.Reason
	err    error
}

func (f fixedValidator) Check(equipment.Build) (rules.Reason, error) {
	return f.reason, f.err
}

type AnnealerTestSuite struct {
	suite.Suite
	pool      *gearpool.Pool
	validator *rules.Validator
}

func TestAnnealerSuite(t *testing.T) {
	suite.Run(t, new(AnnealerTestSuite))
}

func (s *AnnealerTestSuite) SetupTest() {
	pool, err := gearpool.New(testutils.CreateTestCatalog())
	s.Require().NoError(err)
	s.pool = pool

	v, err := rules.NewValidator(&rules.ValidatorConfig{Level: 106, Strict: true})
	s.Require().NoError(err)
	s.validator = v
}

func (s *AnnealerTestSuite) config(seed uint64) search.AnnealerConfig {
	return search.AnnealerConfig{
		Name:               utility.PresetEHP,
		Pool:               s.pool,
		Validator:          s.validator,
		Utility:            utility.EffectiveHP,
		Source:             random.NewSeeded(seed),
		MaxIterations:      3000,
		InitialTemperature: 2000,
		Logger:             discardLogger(),
	}
}

func (s *AnnealerTestSuite) run(cfg search.AnnealerConfig) *search.Result {
	a, err := search.NewAnnealer(&cfg)
	s.Require().NoError(err)

	res, err := a.Run(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(res)
	return res
}

func (s *AnnealerTestSuite) TestTemperatureSchedule() {
	cfg := s.config(1)
	cfg.MaxIterations = 4
	cfg.InitialTemperature = 100
	a, err := search.NewAnnealer(&cfg)
	s.Require().NoError(err)

	s.Assert().Equal(75.0, a.Temperature(0))
	s.Assert().Equal(50.0, a.Temperature(1))
	s.Assert().Equal(25.0, a.Temperature(2))
	s.Assert().Equal(0.0, a.Temperature(3))
}

func (s *AnnealerTestSuite) TestFindsGoodBuild() {
	res := s.run(s.config(42))

	s.Assert().False(res.EarlyTerminated)
	s.Assert().Equal(3000, res.Iterations)
	// eight Ruin pieces give 8000
	s.Assert().GreaterOrEqual(res.BestUtility, 6000.0)
	s.Assert().Equal(utility.EffectiveHP(res.Best), res.BestUtility)

	ok, err := s.validator.Validate(res.Best)
	s.Require().NoError(err)
	s.Assert().True(ok)
}

func (s *AnnealerTestSuite) TestSameSeedSameResult() {
	first := s.run(s.config(1234))
	second := s.run(s.config(1234))

	s.Assert().True(first.Best.Equal(second.Best))
	s.Assert().Equal(first.BestUtility, second.BestUtility)
	s.Assert().Equal(first.Accepted, second.Accepted)
	s.Assert().Equal(first.InvalidNeighbors, second.InvalidNeighbors)
}

func (s *AnnealerTestSuite) TestClassConstraintRespected() {
	v, err := rules.NewValidator(&rules.ValidatorConfig{Level: 106, Class: equipment.ClassShaman, Strict: true})
	s.Require().NoError(err)

	cfg := s.config(8)
	cfg.Validator = v
	cfg.Class = equipment.ClassShaman
	cfg.Utility = utility.MeleeDPS
	cfg.Name = utility.PresetDPSMelee
	res := s.run(cfg)

	s.Require().NotNil(res.Best.Weapon())
	s.Assert().Equal(equipment.CategoryRelik, res.Best.Weapon().Category)
	s.Assert().Greater(res.BestUtility, 0.0)
}

func (s *AnnealerTestSuite) TestZeroTemperatureNeverMovesDownhill() {
	cfg := s.config(77)
	cfg.InitialTemperature = 0
	cfg.MaxIterations = 500
	cfg.ProgressInterval = 1

	var utilities []float64
	cfg.OnProgress = func(p search.Progress) {
		s.Assert().Equal(0.0, p.Temperature)
		s.Assert().Equal(p.BestUtility, p.Utility)
		utilities = append(utilities, p.Utility)
	}
	s.run(cfg)

	s.Require().Len(utilities, 500)
	for i := 1; i < len(utilities); i++ {
		s.Require().GreaterOrEqual(utilities[i], utilities[i-1])
	}
}

// downhillRun takes one step at T=50 from the empty build (utility 10) to a
// one-helmet build (utility -15), then one step at T=0. u is the uniform draw
// offered to the first step.
func (s *AnnealerTestSuite) downhillRun(u float64) (*search.Result, []search.Progress) {
	cfg := search.AnnealerConfig{
		Name:      utility.PresetEHP,
		Pool:      &stubSampler{item: testutils.CreateTestItem("Cap", equipment.CategoryHelmet)},
		Validator: fixedValidator{},
		Utility: func(b equipment.Build) float64 {
			if b.IsEmpty() {
				return 10
			}
			return -15
		},
		Source:             &random.Fixed{Ints: []int{int(equipment.SlotHelmet)}, Floats: []float64{u}},
		MaxIterations:      2,
		InitialTemperature: 100,
		ProgressInterval:   1,
		Logger:             discardLogger(),
	}

	var seen []search.Progress
	cfg.OnProgress = func(p search.Progress) { seen = append(seen, p) }
	return s.run(cfg), seen
}

func (s *AnnealerTestSuite) TestWorseNeighborAcceptance() {
	// exp(-(10-(-15))/50)
	threshold := math.Exp(-0.5)

	testCases := []struct {
		name     string
		u        float64
		accepted bool
	}{
		{name: "well below threshold", u: 0.1, accepted: true},
		{name: "just below threshold", u: math.Nextafter(threshold, 0), accepted: true},
		{name: "at threshold", u: threshold, accepted: true},
		{name: "just above threshold", u: math.Nextafter(threshold, 1), accepted: false},
		{name: "well above threshold", u: 0.99, accepted: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res, seen := s.downhillRun(tc.u)
			s.Require().Len(seen, 2)
			s.Assert().Equal(50.0, seen[0].Temperature)
			s.Assert().Equal(10.0, res.BestUtility)
			s.Assert().True(res.Best.IsEmpty())

			if tc.accepted {
				s.Assert().Equal(1, res.Accepted)
				s.Assert().Equal(-15.0, seen[0].Utility)
			} else {
				s.Assert().Equal(0, res.Accepted)
				s.Assert().Equal(10.0, seen[0].Utility)
			}
			// the T=0 step never takes a non-improving neighbor
			s.Assert().Equal(seen[0].Utility, seen[1].Utility)
		})
	}
}

func (s *AnnealerTestSuite) TestImprovingNeighborSkipsUniformDraw() {
	ctrl := gomock.NewController(s.T())
	src := randommock.NewMockSource(ctrl)
	src.EXPECT().IntN(equipment.NumSlots).Return(int(equipment.SlotHelmet)).Times(2)
	// no Float64 expectation: improvements and T=0 steps must not draw

	cfg := search.AnnealerConfig{
		Name:               utility.PresetEHP,
		Pool:               &stubSampler{item: testutils.CreateTestItem("Cap", equipment.CategoryHelmet)},
		Validator:          fixedValidator{},
		Utility:            func(b equipment.Build) float64 { return float64(len(b.Items())) },
		Source:             src,
		MaxIterations:      2,
		InitialTemperature: 100,
		Logger:             discardLogger(),
	}
	res := s.run(cfg)

	s.Assert().Equal(1, res.Accepted)
	s.Assert().Equal(1.0, res.BestUtility)
}

func (s *AnnealerTestSuite) TestBestNeverDecreases() {
	cfg := s.config(3)
	cfg.ProgressInterval = 1

	last := 0.0
	cfg.OnProgress = func(p search.Progress) {
		s.Require().GreaterOrEqual(p.BestUtility, last)
		s.Require().GreaterOrEqual(p.BestUtility, p.Utility)
		last = p.BestUtility
	}
	res := s.run(cfg)
	s.Assert().Equal(last, res.BestUtility)
}

func (s *AnnealerTestSuite) TestEarlyTermination() {
	ctrl := gomock.NewController(s.T())
	recorder := metricsmock.NewMockRecorder(ctrl)
	recorder.EXPECT().InvalidNeighbor(utility.PresetEHP, string(rules.ReasonSkillBudget)).Times(101)
	recorder.EXPECT().EarlyTermination(utility.PresetEHP)
	recorder.EXPECT().RunFinished(utility.PresetEHP, 0.0, gomock.Any())

	cfg := s.config(1)
	cfg.Validator = fixedValidator{reason: rules.ReasonSkillBudget}
	cfg.Metrics = recorder
	res := s.run(cfg)

	s.Assert().True(res.EarlyTerminated)
	s.Assert().Equal(0, res.Iterations)
	s.Assert().Equal(101, res.InvalidNeighbors)
	s.Assert().True(res.Best.IsEmpty())
}

func (s *AnnealerTestSuite) TestCustomRetryLimit() {
	cfg := s.config(1)
	cfg.Validator = fixedValidator{reason: rules.ReasonLevel}
	cfg.MaxInvalidRetry = 4
	res := s.run(cfg)

	s.Assert().True(res.EarlyTerminated)
	s.Assert().Equal(5, res.InvalidNeighbors)
}

func (s *AnnealerTestSuite) TestNoRetries() {
	cfg := s.config(1)
	cfg.Validator = fixedValidator{reason: rules.ReasonClass}
	cfg.MaxInvalidRetry = search.NoInvalidRetry
	res := s.run(cfg)

	s.Assert().True(res.EarlyTerminated)
	s.Assert().Equal(1, res.InvalidNeighbors)
	s.Assert().Equal(0, res.Iterations)
}

func (s *AnnealerTestSuite) TestMetricsPerIteration() {
	ctrl := gomock.NewController(s.T())
	recorder := metricsmock.NewMockRecorder(ctrl)
	recorder.EXPECT().Iteration(utility.PresetEHP, gomock.Any()).Times(50)
	recorder.EXPECT().InvalidNeighbor(utility.PresetEHP, gomock.Any()).AnyTimes()
	recorder.EXPECT().RunFinished(utility.PresetEHP, gomock.Any(), gomock.Any())

	cfg := s.config(10)
	cfg.MaxIterations = 50
	cfg.Metrics = recorder
	s.run(cfg)
}

func (s *AnnealerTestSuite) TestValidatorErrorAborts() {
	cfg := s.config(1)
	cfg.Validator = fixedValidator{err: errors.Internal("weapon slot holds a helmet")}
	a, err := search.NewAnnealer(&cfg)
	s.Require().NoError(err)

	res, err := a.Run(context.Background())
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
	s.Assert().NotNil(res)
}

func (s *AnnealerTestSuite) TestCanceledContext() {
	a, err := search.NewAnnealer(func() *search.AnnealerConfig { c := s.config(1); return &c }())
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := a.Run(ctx)
	s.Require().Error(err)
	s.Assert().True(errors.IsCanceled(err))
	s.Require().NotNil(res)
	s.Assert().Equal(0, res.Iterations)
}

func (s *AnnealerTestSuite) TestConfigValidation() {
	_, err := search.NewAnnealer(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = search.NewAnnealer(&search.AnnealerConfig{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	cfg := s.config(1)
	cfg.InitialTemperature = -1
	_, err = search.NewAnnealer(&cfg)
	s.Assert().True(errors.IsInvalidArgument(err))

	cfg = s.config(1)
	cfg.MaxInvalidRetry = -2
	_, err = search.NewAnnealer(&cfg)
	s.Assert().True(errors.IsInvalidArgument(err))

	cfg = s.config(1)
	cfg.Class = "Bard"
	_, err = search.NewAnnealer(&cfg)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *AnnealerTestSuite) TestRunRestarts() {
	seeds := []uint64{11, 12, 13, 14}
	cfg := s.config(0)
	cfg.MaxIterations = 800

	best, err := search.RunRestarts(context.Background(), cfg, seeds, 4)
	s.Require().NoError(err)

	var want float64
	for _, seed := range seeds {
		res := s.run(func() search.AnnealerConfig { c := cfg; c.Source = random.NewSeeded(seed); return c }())
		want = max(want, res.BestUtility)
	}
	s.Assert().Equal(want, best.BestUtility)
	s.Assert().Contains(seeds, best.Seed)

	serial, err := search.RunRestarts(context.Background(), cfg, seeds, 1)
	s.Require().NoError(err)
	s.Assert().Equal(best.Seed, serial.Seed)
	s.Assert().True(best.Best.Equal(serial.Best))
}

func (s *AnnealerTestSuite) TestRunRestartsErrors() {
	_, err := search.RunRestarts(context.Background(), s.config(0), nil, 2)
	s.Assert().True(errors.IsInvalidArgument(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = search.RunRestarts(ctx, s.config(0), []uint64{1, 2}, 2)
	s.Require().Error(err)
	s.Assert().True(errors.IsCanceled(err))
}
