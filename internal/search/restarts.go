package search

import (
	"context"
	"runtime"
	"sync"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
)

// RunRestarts runs one independent annealer per seed and returns the run
// with the highest best utility. Ties go to the earlier seed, so the outcome
// does not depend on scheduling. cfg.Source is ignored; every run gets its
// own seeded source. OnProgress, if set, may be called concurrently.
// workers <= 0 uses GOMAXPROCS.
func RunRestarts(ctx context.Context, cfg AnnealerConfig, seeds []uint64, workers int) (*Result, error) {
	if len(seeds) == 0 {
		return nil, errors.InvalidArgument("at least one seed is required")
	}

	// validate once up front so a bad config fails before any goroutine starts
	annealers := make([]*Annealer, len(seeds))
	for i, seed := range seeds {
		runCfg := cfg
		runCfg.Source = random.NewSeeded(seed)
		a, err := NewAnnealer(&runCfg)
		if err != nil {
			return nil, err
		}
		annealers[i] = a
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(seeds))

	type outcome struct {
		res *Result
		err error
	}
	outcomes := make([]outcome, len(seeds))

	idxCh := make(chan int, len(seeds))
	for i := range seeds {
		idxCh <- i
	}
	close(idxCh)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				res, err := annealers[idx].Run(ctx)
				if res != nil {
					res.Seed = seeds[idx]
				}
				outcomes[idx] = outcome{res: res, err: err}
			}
		}()
	}
	wg.Wait()

	var best *Result
	for i, o := range outcomes {
		if o.err != nil {
			return nil, errors.Wrapf(o.err, "restart with seed %d failed", seeds[i])
		}
		if best == nil || o.res.BestUtility > best.BestUtility {
			best = o.res
		}
	}
	return best, nil
}
