// Package optimizer runs gear optimizations against the imported catalog
// and stores their results
package optimizer

//go:generate mockgen -destination=mock/mock_service.go -package=optimizermock github.com/KirkDiggler/rpg-build-optimizer/internal/orchestrators/optimizer Service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/encoding"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/gearpool"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/metrics"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/results"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/rules"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/search"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/utility"
)

// seedBits is the width of each of the two draws combined into a seed
const seedBits = 31

// Service defines the optimizer operations
type Service interface {
	Optimize(ctx context.Context, input *OptimizeInput) (*OptimizeOutput, error)
	GetResult(ctx context.Context, input *GetResultInput) (*GetResultOutput, error)
}

// Config holds the dependencies for the optimizer orchestrator
type Config struct {
	CatalogRepo catalog.Repository
	ResultRepo  results.Repository
	IDGenerator idgen.Generator

	// SeedSource draws seeds for unseeded runs. Nil uses dice rolls.
	SeedSource random.Source

	// ResultTTL of 0 uses the repository default
	ResultTTL time.Duration

	Metrics metrics.Recorder
	Logger  *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CatalogRepo == nil {
		vb.RequiredField("CatalogRepo")
	}
	if c.ResultRepo == nil {
		vb.RequiredField("ResultRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.ResultTTL < 0 {
		vb.InvalidField("ResultTTL", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	catalogRepo catalog.Repository
	resultRepo  results.Repository
	idGen       idgen.Generator
	seeds       random.Source
	resultTTL   time.Duration
	metrics     metrics.Recorder
	logger      *slog.Logger
}

// NewOrchestrator creates a new optimizer orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		catalogRepo: cfg.CatalogRepo,
		resultRepo:  cfg.ResultRepo,
		idGen:       cfg.IDGenerator,
		seeds:       cfg.SeedSource,
		resultTTL:   cfg.ResultTTL,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop{}
	}
	if o.seeds == nil {
		o.seeds = random.NewDice(nil, o.logger)
	}
	return o, nil
}

// request is a validated OptimizeInput
type request struct {
	params   utility.Hyperparameters
	level    int
	class    equipment.Class
	strict   bool
	restarts int
	workers  int
	seed     uint64
}

func (o *orchestrator) parseInput(input *OptimizeInput) (*request, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	params, err := utility.Preset(input.Preset)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid preset")
	}
	if input.MaxIterations > 0 {
		params.MaxIterations = input.MaxIterations
	}
	if input.InitialTemperature > 0 {
		params.InitialTemperature = input.InitialTemperature
	}

	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("Level", input.Level, vb)
	if input.Restarts < 0 {
		vb.InvalidField("Restarts", "must not be negative")
	}
	if input.Workers < 0 {
		vb.InvalidField("Workers", "must not be negative")
	}
	if input.MaxIterations < 0 {
		vb.InvalidField("MaxIterations", "must not be negative")
	}
	if math.IsNaN(input.InitialTemperature) || input.InitialTemperature < 0 {
		vb.InvalidField("InitialTemperature", "must not be negative")
	}

	var class equipment.Class
	if input.Class != "" {
		c, ok := equipment.ClassFromString(input.Class)
		if !ok {
			vb.InvalidField("Class", "unknown class "+input.Class)
		}
		class = c
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	req := &request{
		params:   params,
		level:    input.Level,
		class:    class,
		strict:   input.Strict,
		restarts: max(input.Restarts, 1),
		workers:  input.Workers,
		seed:     input.Seed,
	}
	if req.seed == 0 {
		req.seed = o.drawSeed()
	}
	return req, nil
}

// drawSeed returns a nonzero seed from the seed source
func (o *orchestrator) drawSeed() uint64 {
	hi := uint64(o.seeds.IntN(1 << seedBits))
	lo := uint64(o.seeds.IntN(1 << seedBits))
	return max(hi<<seedBits|lo, 1)
}

// Optimize anneals over the imported catalog and stores the best build
func (o *orchestrator) Optimize(ctx context.Context, input *OptimizeInput) (*OptimizeOutput, error) {
	req, err := o.parseInput(input)
	if err != nil {
		return nil, err
	}

	cat, err := o.catalogRepo.List(ctx, &catalog.ListInput{})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, "import a catalog before optimizing")
		}
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	pool, err := gearpool.New(cat.Items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build gear pool")
	}

	validator, err := rules.NewValidator(&rules.ValidatorConfig{
		Level:  req.level,
		Class:  req.class,
		Strict: req.strict,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create validator")
	}

	annealCfg := search.AnnealerConfig{
		Name:               req.params.Name,
		Pool:               pool,
		Validator:          validator,
		Utility:            req.params.Utility,
		Class:              req.class,
		MaxIterations:      req.params.MaxIterations,
		InitialTemperature: req.params.InitialTemperature,
		MaxInvalidRetry:    input.MaxInvalidRetry,
		ProgressInterval:   input.ProgressInterval,
		OnProgress:         input.OnProgress,
		Logger:             o.logger,
		Metrics:            o.metrics,
	}

	o.logger.InfoContext(ctx, "optimization started",
		"preset", req.params.Name,
		"level", req.level,
		"class", string(req.class),
		"strict", req.strict,
		"restarts", req.restarts,
		"seed", req.seed,
		"catalog_items", pool.Size(),
		"catalog_version", cat.Version)

	res, err := o.run(ctx, annealCfg, req)
	if err != nil {
		return nil, err
	}

	record := &results.Record{
		RunID:            o.idGen.Generate(),
		Preset:           req.params.Name,
		Level:            req.level,
		Class:            req.class,
		Strict:           req.strict,
		Utility:          res.BestUtility,
		Iterations:       res.Iterations,
		Accepted:         res.Accepted,
		InvalidNeighbors: res.InvalidNeighbors,
		EarlyTerminated:  res.EarlyTerminated,
		Restarts:         req.restarts,
		Seed:             res.Seed,
		Duration:         res.Duration,
		CatalogVersion:   cat.Version,
	}
	record.SetBuild(res.Best)

	if len(cat.WynnBuilderIDs) > 0 {
		link, err := encoding.WynnBuilderURL(res.Best, req.level, cat.WynnBuilderIDs)
		if err != nil {
			o.logger.WarnContext(ctx, "skipping WynnBuilder link", "error", err)
		} else {
			record.WynnBuilderURL = link
		}
	}

	created, err := o.resultRepo.Create(ctx, results.CreateInput{Record: record, TTL: o.resultTTL})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store result")
	}

	o.logger.InfoContext(ctx, "optimization finished",
		"run_id", created.Record.RunID,
		"preset", req.params.Name,
		"utility", res.BestUtility,
		"iterations", res.Iterations,
		"early_terminated", res.EarlyTerminated,
		"seed", res.Seed,
		"duration", res.Duration)

	return &OptimizeOutput{
		RunID:            created.Record.RunID,
		Build:            res.Best,
		Utility:          res.BestUtility,
		Iterations:       res.Iterations,
		Accepted:         res.Accepted,
		InvalidNeighbors: res.InvalidNeighbors,
		EarlyTerminated:  res.EarlyTerminated,
		Seed:             res.Seed,
		Duration:         res.Duration,
		CatalogVersion:   cat.Version,
		WynnDataURL:      encoding.WynnDataURL(res.Best),
		WynnBuilderURL:   record.WynnBuilderURL,
	}, nil
}

// run executes a single annealer or seeded restarts
func (o *orchestrator) run(ctx context.Context, cfg search.AnnealerConfig, req *request) (*search.Result, error) {
	if req.restarts == 1 {
		cfg.Source = random.NewSeeded(req.seed)
		annealer, err := search.NewAnnealer(&cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create annealer")
		}
		res, err := annealer.Run(ctx)
		if err != nil {
			return nil, err
		}
		res.Seed = req.seed
		return res, nil
	}

	seeds := make([]uint64, req.restarts)
	for i := range seeds {
		seeds[i] = req.seed + uint64(i)
	}
	return search.RunRestarts(ctx, cfg, seeds, req.workers)
}

// GetResult returns a stored run
func (o *orchestrator) GetResult(ctx context.Context, input *GetResultInput) (*GetResultOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.RunID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}

	out, err := o.resultRepo.Get(ctx, results.GetInput{RunID: input.RunID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", input.RunID)
	}

	return &GetResultOutput{
		Record:      out.Record,
		WynnDataURL: encoding.WynnDataURL(out.Record.Build()),
	}, nil
}
