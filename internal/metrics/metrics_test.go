package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/metrics"
)

type MetricsTestSuite struct {
	suite.Suite
	recorder *metrics.Prometheus
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (s *MetricsTestSuite) SetupTest() {
	s.recorder = metrics.NewPrometheus("buildopt")
}

// values gathers every sample of a family keyed by its joined label values
func (s *MetricsTestSuite) values(name string) map[string]float64 {
	families, err := s.recorder.Registry().Gather()
	s.Require().NoError(err)

	out := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			key := ""
			for _, label := range m.GetLabel() {
				if key != "" {
					key += ","
				}
				key += label.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func (s *MetricsTestSuite) TestIterations() {
	s.recorder.Iteration("ehp", true)
	s.recorder.Iteration("ehp", false)
	s.recorder.Iteration("dps_melee", true)

	s.Assert().Equal(map[string]float64{"ehp": 2, "dps_melee": 1}, s.values("buildopt_anneal_iterations_total"))
	s.Assert().Equal(map[string]float64{"ehp": 1, "dps_melee": 1}, s.values("buildopt_anneal_accepted_moves_total"))
}

func (s *MetricsTestSuite) TestInvalidNeighborsByReason() {
	s.recorder.InvalidNeighbor("ehp", "skill_budget")
	s.recorder.InvalidNeighbor("ehp", "skill_budget")
	s.recorder.InvalidNeighbor("ehp", "class")

	s.Assert().Equal(map[string]float64{"ehp,skill_budget": 2, "ehp,class": 1},
		s.values("buildopt_anneal_invalid_neighbors_total"))
}

func (s *MetricsTestSuite) TestRunFinished() {
	s.recorder.EarlyTermination("balanced")
	s.recorder.RunFinished("balanced", 1234.5, 250*time.Millisecond)

	s.Assert().Equal(map[string]float64{"balanced": 1}, s.values("buildopt_anneal_early_terminations_total"))
	s.Assert().Equal(map[string]float64{"balanced": 1}, s.values("buildopt_anneal_runs_total"))
	s.Assert().Equal(map[string]float64{"balanced": 1234.5}, s.values("buildopt_anneal_best_utility"))
	s.Assert().Equal(map[string]float64{"balanced": 1}, s.values("buildopt_anneal_run_duration_seconds"))
}

func (s *MetricsTestSuite) TestPreregister() {
	s.recorder.Preregister([]string{"ehp", "balanced"}, []string{"level", "class"})
	s.recorder.InvalidNeighbor("ehp", "level")

	s.Assert().Equal(map[string]float64{
		"ehp,level": 1, "ehp,class": 0, "balanced,level": 0, "balanced,class": 0,
	}, s.values("buildopt_anneal_invalid_neighbors_total"))
	s.Assert().Equal(map[string]float64{"ehp": 0, "balanced": 0}, s.values("buildopt_anneal_iterations_total"))
	s.Assert().Empty(s.values("buildopt_anneal_best_utility"))
}

func (s *MetricsTestSuite) TestRegistriesAreIndependent() {
	other := metrics.NewPrometheus("buildopt")
	other.Iteration("ehp", true)

	s.Assert().Empty(s.values("buildopt_anneal_iterations_total"))
}

func (s *MetricsTestSuite) TestHandler() {
	s.recorder.Iteration("ehp", true)

	rec := httptest.NewRecorder()
	s.recorder.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	s.Require().NoError(err)
	s.Assert().Equal(200, rec.Code)
	s.Assert().Contains(string(body), `buildopt_anneal_iterations_total{preset="ehp"} 1`)
}

func (s *MetricsTestSuite) TestNop() {
	var r metrics.Recorder = metrics.Nop{}
	s.Assert().NotPanics(func() {
		r.Iteration("ehp", true)
		r.InvalidNeighbor("ehp", "level")
		r.EarlyTermination("ehp")
		r.RunFinished("ehp", 1, time.Second)
	})
}
