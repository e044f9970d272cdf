package optimizer

import (
	"time"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/results"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/search"
)

// OptimizeInput describes one optimization request
type OptimizeInput struct {
	// Preset names the utility and schedule, see utility.PresetNames
	Preset string

	// Level is the target character level
	Level int

	// Class is optional and matched without case
	Class string

	// Strict enables the equip-order search in the validator
	Strict bool

	// Restarts of 0 or 1 runs a single annealer
	Restarts int

	// Workers bounds concurrent restarts, 0 uses GOMAXPROCS
	Workers int

	// Seed of 0 draws a fresh seed. Restart i uses Seed+i.
	Seed uint64

	// Zero keeps the preset's schedule
	MaxIterations      int
	InitialTemperature float64

	MaxInvalidRetry  int
	ProgressInterval int
	OnProgress       search.ProgressFunc
}

// OptimizeOutput is the finished run
type OptimizeOutput struct {
	RunID string
	Build equipment.Build

	Utility          float64
	Iterations       int
	Accepted         int
	InvalidNeighbors int
	EarlyTerminated  bool
	Seed             uint64
	Duration         time.Duration

	CatalogVersion string
	WynnDataURL    string

	// Empty when the catalog has no WynnBuilder id for some item
	WynnBuilderURL string
}

// GetResultInput identifies a stored run
type GetResultInput struct {
	RunID string
}

// GetResultOutput is a stored run
type GetResultOutput struct {
	Record      *results.Record
	WynnDataURL string
}
