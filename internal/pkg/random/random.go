// Package random provides the injectable random sources used by the optimizer
package random

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

//go:generate mockgen -destination=mock/mock_source.go -package=randommock github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random Source

// Source supplies the two draws every random decision is built from
type Source interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64

	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// Seeded is a deterministic PCG source. A Seeded value must not be shared
// between goroutines.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a source that replays the same sequence for the same seed
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Float64 returns a uniform value in [0, 1)
func (s *Seeded) Float64() float64 {
	return s.rng.Float64()
}

// IntN returns a uniform value in [0, n)
func (s *Seeded) IntN(n int) int {
	return s.rng.IntN(n)
}

// floatResolution is the number of distinct values Dice.Float64 can return
const floatResolution = 1 << 24

// Dice adapts an rpg-toolkit dice roller into a Source. Rolls that fail fall
// back to a time-seeded PCG stream.
type Dice struct {
	roller dice.Roller
	logger *slog.Logger

	mu       sync.Mutex
	fallback *rand.Rand
}

// NewDice wraps roller. A nil roller uses dice.DefaultRoller.
func NewDice(roller dice.Roller, logger *slog.Logger) *Dice {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	if logger == nil {
		logger = slog.Default()
	}
	seed := uint64(time.Now().UnixNano())
	return &Dice{
		roller:   roller,
		logger:   logger,
		fallback: rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// IntN rolls a d(n) and shifts it to [0, n)
func (d *Dice) IntN(n int) int {
	v, err := d.roller.Roll(n)
	if err != nil || v < 1 || v > n {
		d.logger.Warn("dice roll failed, using fallback stream", "size", n, "value", v, "error", err)
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.fallback.IntN(n)
	}
	return v - 1
}

// Float64 rolls a d(2^24) and scales it into [0, 1)
func (d *Dice) Float64() float64 {
	return float64(d.IntN(floatResolution)) / floatResolution
}

// Fixed replays scripted draws. Once a queue runs out its last value repeats;
// an empty queue yields zero. Intended for tests and replaying traces.
type Fixed struct {
	Ints   []int
	Floats []float64

	intPos   int
	floatPos int
}

// IntN returns the next scripted index reduced modulo n
func (f *Fixed) IntN(n int) int {
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[min(f.intPos, len(f.Ints)-1)]
	f.intPos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Float64 returns the next scripted uniform draw
func (f *Fixed) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[min(f.floatPos, len(f.Floats)-1)]
	f.floatPos++
	return v
}

var (
	_ Source = (*Seeded)(nil)
	_ Source = (*Dice)(nil)
	_ Source = (*Fixed)(nil)
)
