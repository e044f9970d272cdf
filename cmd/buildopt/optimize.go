package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/config"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/encoding"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/metrics"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/search"
)

var optimizeFlags struct {
	preset          string
	level           int
	class           string
	strict          bool
	restarts        int
	workers         int
	seed            uint64
	maxIterations   int
	temperature     float64
	maxInvalidRetry int
	items           string
	ids             string
	progress        bool
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search for the best build",
	Long: `Run simulated annealing over the catalog and print the best build found.
Without a Redis address the item database is read from --items.`,
	RunE: runOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVar(&optimizeFlags.preset, "preset", "", "utility preset (see 'buildopt presets')")
	f.IntVar(&optimizeFlags.level, "level", 0, "target character level")
	f.StringVar(&optimizeFlags.class, "class", "", "restrict the build to a class")
	f.BoolVar(&optimizeFlags.strict, "strict", true, "check that some equip order makes the build wearable")
	f.IntVar(&optimizeFlags.restarts, "restarts", 0, "number of independent seeded runs")
	f.IntVar(&optimizeFlags.workers, "workers", 0, "concurrent runs, 0 for one per CPU")
	f.Uint64Var(&optimizeFlags.seed, "seed", 0, "seed for the first run, 0 draws one")
	f.IntVar(&optimizeFlags.maxIterations, "max-iterations", 0, "override the preset's iteration count")
	f.Float64Var(&optimizeFlags.temperature, "temperature", 0, "override the preset's initial temperature")
	f.IntVar(&optimizeFlags.maxInvalidRetry, "max-invalid-retry", 0, "neighbor retries before stopping early, 0 for the default, -1 for none")
	f.StringVar(&optimizeFlags.items, "items", "", "item database JSON")
	f.StringVar(&optimizeFlags.ids, "ids", "", "WynnBuilder id table JSON")
	f.BoolVar(&optimizeFlags.progress, "progress", false, "print progress while annealing")
}

// applyOptimizeFlags copies explicitly set flags over the config
func applyOptimizeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Optimizer.Preset = optimizeFlags.preset
	}
	if flags.Changed("level") {
		cfg.Optimizer.Level = optimizeFlags.level
	}
	if flags.Changed("class") {
		cfg.Optimizer.Class = optimizeFlags.class
	}
	if flags.Changed("strict") {
		cfg.Optimizer.Strict = optimizeFlags.strict
	}
	if flags.Changed("restarts") {
		cfg.Optimizer.Restarts = optimizeFlags.restarts
	}
	if flags.Changed("workers") {
		cfg.Optimizer.Workers = optimizeFlags.workers
	}
	if flags.Changed("seed") {
		cfg.Optimizer.Seed = optimizeFlags.seed
	}
	if flags.Changed("max-iterations") {
		cfg.Optimizer.MaxIterations = optimizeFlags.maxIterations
	}
	if flags.Changed("temperature") {
		cfg.Optimizer.InitialTemperature = optimizeFlags.temperature
	}
	if flags.Changed("max-invalid-retry") {
		cfg.Optimizer.MaxInvalidRetry = optimizeFlags.maxInvalidRetry
	}
	if flags.Changed("items") {
		cfg.Catalog.ItemsPath = optimizeFlags.items
	}
	if flags.Changed("ids") {
		cfg.Catalog.IDsPath = optimizeFlags.ids
	}
}

// optimizeInput maps optimizer settings onto a request
func optimizeInput(oc config.OptimizerConfig) *optimizer.OptimizeInput {
	return &optimizer.OptimizeInput{
		Preset:             oc.Preset,
		Level:              oc.Level,
		Class:              oc.Class,
		Strict:             oc.Strict,
		Restarts:           oc.Restarts,
		Workers:            oc.Workers,
		Seed:               oc.Seed,
		MaxIterations:      oc.MaxIterations,
		InitialTemperature: oc.InitialTemperature,
		MaxInvalidRetry:    oc.MaxInvalidRetry,
		ProgressInterval:   oc.ProgressInterval,
	}
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	applyOptimizeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, cfg, metrics.Nop{})
	if err != nil {
		return err
	}
	defer svc.Close()

	input := optimizeInput(cfg.Optimizer)
	if optimizeFlags.progress {
		out := cmd.ErrOrStderr()
		input.OnProgress = func(p search.Progress) {
			fmt.Fprintf(out, "iteration %d/%d  T=%.2f  best=%.2f  current=%.2f\n",
				p.Iteration, p.MaxIterations, p.Temperature, p.BestUtility, p.Utility)
		}
	}

	output, err := svc.optimizer.Optimize(ctx, input)
	if err != nil {
		return err
	}

	return printOptimizeOutput(ctx, cmd, svc.catalog, cfg.Optimizer.Level, output)
}

func printOptimizeOutput(ctx context.Context, cmd *cobra.Command, repo catalog.Repository, level int, output *optimizer.OptimizeOutput) error {
	var ids map[string]int
	if cat, err := repo.List(ctx, &catalog.ListInput{}); err != nil {
		slog.WarnContext(ctx, "could not read id table", "error", err)
	} else {
		ids = cat.WynnBuilderIDs
	}

	listing, err := encoding.Listing(output.Build, level, ids)
	if err != nil {
		slog.WarnContext(ctx, "could not build WynnBuilder link", "error", err)
		if listing, err = encoding.Listing(output.Build, level, nil); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, listing)
	fmt.Fprintf(w, "utility: %.4f\n", output.Utility)
	fmt.Fprintf(w, "iterations: %d (accepted %d, invalid neighbors %d)\n",
		output.Iterations, output.Accepted, output.InvalidNeighbors)
	if output.EarlyTerminated {
		fmt.Fprintln(w, "stopped early: no valid neighbor within the retry limit")
	}
	fmt.Fprintf(w, "seed: %d\n", output.Seed)
	fmt.Fprintf(w, "run id: %s\n", output.RunID)
	return nil
}
