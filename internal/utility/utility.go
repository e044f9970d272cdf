// Package utility scores builds. Every function here is pure and safe to
// share between concurrent annealing runs.
package utility

import (
	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
)

// Func maps a build to the scalar being maximized
type Func func(b equipment.Build) float64

// EffectiveHP sums flat health and health bonus across occupied slots.
// Regen and mitigation are not modeled.
func EffectiveHP(b equipment.Build) float64 {
	total := 0
	for _, item := range b.Items() {
		total += item.Health + item.HealthBonus
	}
	return float64(total)
}

// HarmonicMean combines two non-negative scores so that losing either one
// entirely drives the result to zero
func HarmonicMean(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

// Balanced returns the harmonic mean of two utilities
func Balanced(x, y Func) Func {
	return func(b equipment.Build) float64 {
		return HarmonicMean(x(b), y(b))
	}
}
