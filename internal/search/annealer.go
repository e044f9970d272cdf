// Package search runs simulated annealing over gear builds.
package search

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/metrics"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/rules"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/utility"
)

const (
	// DefaultMaxInvalidRetry is the number of extra neighbor draws allowed per
	// iteration before the run stops early
	DefaultMaxInvalidRetry = 100

	// NoInvalidRetry as MaxInvalidRetry stops the run at the first invalid
	// neighbor
	NoInvalidRetry = -1

	// DefaultProgressInterval is how often progress is logged, in iterations
	DefaultProgressInterval = 1000
)

// Validator judges candidate builds
type Validator interface {
	Check(b equipment.Build) (rules.Reason, error)
}

// Progress is a snapshot passed to ProgressFunc
type Progress struct {
	Iteration     int
	MaxIterations int
	Temperature   float64
	BestUtility   float64
	Utility       float64
}

// ProgressFunc observes a run every ProgressInterval iterations
type ProgressFunc func(p Progress)

// AnnealerConfig configures one annealing run
type AnnealerConfig struct {
	// Name labels logs and metrics, usually the preset name
	Name string

	Pool      Sampler
	Validator Validator
	Utility   utility.Func
	Source    random.Source

	// Class restricts the weapon category drawn by neighbors. Empty means any.
	Class equipment.Class

	MaxIterations      int
	InitialTemperature float64

	// MaxInvalidRetry is the number of extra neighbor draws per iteration.
	// 0 uses DefaultMaxInvalidRetry; NoInvalidRetry allows none.
	MaxInvalidRetry int

	// ProgressInterval of 0 uses DefaultProgressInterval
	ProgressInterval int
	OnProgress       ProgressFunc

	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Validate checks the configuration
func (c *AnnealerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Pool == nil {
		vb.RequiredField("Pool")
	}
	if c.Validator == nil {
		vb.RequiredField("Validator")
	}
	if c.Utility == nil {
		vb.RequiredField("Utility")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}
	if c.Class != "" && !c.Class.IsValid() {
		vb.InvalidField("Class", "unknown class "+string(c.Class))
	}
	errors.ValidatePositive("MaxIterations", c.MaxIterations, vb)
	if math.IsNaN(c.InitialTemperature) || math.IsInf(c.InitialTemperature, 0) {
		vb.InvalidField("InitialTemperature", "must be finite")
	}
	errors.ValidateNonNegative("InitialTemperature", c.InitialTemperature, vb)
	if c.MaxInvalidRetry < NoInvalidRetry {
		vb.InvalidField("MaxInvalidRetry", "must be -1 or more")
	}
	if c.ProgressInterval < 0 {
		vb.InvalidField("ProgressInterval", "must not be negative")
	}
	return vb.Build()
}

// Result is the outcome of a run
type Result struct {
	Best        equipment.Build
	BestUtility float64

	// Iterations counts completed steps
	Iterations int

	// EarlyTerminated is set when no valid neighbor was found within the
	// retry limit. Best is still the best build seen.
	EarlyTerminated bool

	Accepted         int
	InvalidNeighbors int
	Duration         time.Duration

	// Seed is set by RunRestarts
	Seed uint64
}

// Annealer maximizes a utility over valid builds
type Annealer struct {
	name             string
	pool             Sampler
	validator        Validator
	utility          utility.Func
	src              random.Source
	class            equipment.Class
	maxIterations    int
	t0               float64
	maxInvalidRetry  int
	progressInterval int
	onProgress       ProgressFunc
	logger           *slog.Logger
	metrics          metrics.Recorder
}

// NewAnnealer creates an annealer
func NewAnnealer(cfg *AnnealerConfig) (*Annealer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	a := &Annealer{
		name:             cfg.Name,
		pool:             cfg.Pool,
		validator:        cfg.Validator,
		utility:          cfg.Utility,
		src:              cfg.Source,
		class:            cfg.Class,
		maxIterations:    cfg.MaxIterations,
		t0:               cfg.InitialTemperature,
		maxInvalidRetry:  cfg.MaxInvalidRetry,
		progressInterval: cfg.ProgressInterval,
		onProgress:       cfg.OnProgress,
		logger:           cfg.Logger,
		metrics:          cfg.Metrics,
	}
	switch a.maxInvalidRetry {
	case 0:
		a.maxInvalidRetry = DefaultMaxInvalidRetry
	case NoInvalidRetry:
		a.maxInvalidRetry = 0
	}
	if a.progressInterval == 0 {
		a.progressInterval = DefaultProgressInterval
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.metrics == nil {
		a.metrics = metrics.Nop{}
	}
	return a, nil
}

// Temperature returns the temperature used in step k. It falls linearly
// from just below T0 to exactly 0 on the last step.
func (a *Annealer) Temperature(k int) float64 {
	return a.t0 * (1 - float64(k+1)/float64(a.maxIterations))
}

// accept applies the Metropolis rule. Improvements are always taken; at
// zero temperature nothing else is.
func (a *Annealer) accept(uc, un, temperature float64) bool {
	if uc < un {
		return true
	}
	if temperature <= 0 {
		return false
	}
	u := a.src.Float64()
	return math.Exp(-(uc-un)/temperature) >= u
}

// validNeighbor draws up to 1+maxInvalidRetry neighbors of cur and returns
// the first valid one. It reports false when every draw was rejected.
func (a *Annealer) validNeighbor(cur equipment.Build, res *Result) (equipment.Build, bool, error) {
	for attempt := 0; attempt <= a.maxInvalidRetry; attempt++ {
		next := Neighbor(cur, a.pool, a.class, a.src, a.logger)

		reason, err := a.validator.Check(next)
		if err != nil {
			return equipment.Build{}, false, errors.Wrap(err, "failed to validate neighbor")
		}
		if reason == rules.ReasonNone {
			return next, true, nil
		}

		res.InvalidNeighbors++
		a.metrics.InvalidNeighbor(a.name, string(reason))
	}
	return equipment.Build{}, false, nil
}

// Run anneals from the empty build. Cancelling ctx stops the run with a
// CANCELED or DEADLINE_EXCEEDED error; the partial result is still returned.
func (a *Annealer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{}

	var cur, best equipment.Build
	uc := a.utility(cur)
	ub := uc

	finish := func() *Result {
		res.Best = best
		res.BestUtility = ub
		res.Duration = time.Since(start)
		a.metrics.RunFinished(a.name, ub, res.Duration)
		return res
	}

	a.logger.DebugContext(ctx, "annealing started",
		"name", a.name,
		"max_iterations", a.maxIterations,
		"initial_temperature", a.t0,
		"class", string(a.class))

	for k := 0; k < a.maxIterations; k++ {
		if err := ctx.Err(); err != nil {
			return finish(), errors.FromContext(err, "annealing interrupted").
				WithMeta("iteration", k)
		}

		temperature := a.Temperature(k)

		next, ok, err := a.validNeighbor(cur, res)
		if err != nil {
			return finish(), errors.Wrapf(err, "annealing failed at iteration %d", k)
		}
		if !ok {
			a.logger.WarnContext(ctx, "no valid neighbor found, stopping early",
				"name", a.name,
				"max_invalid_retry", a.maxInvalidRetry,
				"iteration", k,
				"temperature", temperature)
			res.EarlyTerminated = true
			a.metrics.EarlyTermination(a.name)
			break
		}

		un := a.utility(next)
		accepted := a.accept(uc, un, temperature)
		if accepted {
			cur, uc = next, un
			res.Accepted++
		}
		if uc > ub {
			best, ub = cur, uc
		}

		res.Iterations = k + 1
		a.metrics.Iteration(a.name, accepted)

		if k%a.progressInterval == 0 {
			a.logger.DebugContext(ctx, "annealing progress",
				"name", a.name,
				"iteration", k,
				"max_iterations", a.maxIterations,
				"temperature", temperature,
				"best_utility", ub,
				"utility", uc)
			if a.onProgress != nil {
				a.onProgress(Progress{
					Iteration:     k,
					MaxIterations: a.maxIterations,
					Temperature:   temperature,
					BestUtility:   ub,
					Utility:       uc,
				})
			}
		}
	}

	return finish(), nil
}
