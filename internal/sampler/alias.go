// Package sampler implements O(1) weighted index sampling with the two-array
// alias method.
package sampler

import (
	"math"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
)

// Alias samples indices with probability proportional to their weight.
// It is immutable after New and safe for concurrent use.
type Alias struct {
	prob  []float64
	alias []int
}

// New builds the probability and alias tables in O(n). It fails with an
// InvalidArgument error when weights is empty, contains a negative, NaN or
// infinite value, or sums to zero.
func New(weights []float64) (*Alias, error) {
	n := len(weights)
	if n == 0 {
		return nil, errors.InvalidArgument("sampler requires at least one weight")
	}

	total := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, errors.InvalidArgumentf("weight at index %d is %v", i, w).
				WithMeta("index", i)
		}
		total += w
	}
	if total <= 0 || math.IsInf(total, 0) {
		return nil, errors.InvalidArgumentf("weights sum to %v", total).
			WithMeta("count", n)
	}

	// scaled[i] averages 1, so light entries fill their bucket from a heavy one
	scaled := make([]float64, n)
	light := make([]int, 0, n)
	heavy := make([]int, 0, n)
	for i, w := range weights {
		scaled[i] = w / total * float64(n)
		if scaled[i] < 1 {
			light = append(light, i)
		} else {
			heavy = append(heavy, i)
		}
	}

	prob := make([]float64, n)
	alias := make([]int, n)
	for len(light) > 0 && len(heavy) > 0 {
		l := light[len(light)-1]
		light = light[:len(light)-1]
		g := heavy[len(heavy)-1]
		heavy = heavy[:len(heavy)-1]

		prob[l] = scaled[l]
		alias[l] = g

		scaled[g] = scaled[g] + scaled[l] - 1
		if scaled[g] < 1 {
			light = append(light, g)
		} else {
			heavy = append(heavy, g)
		}
	}

	// Leftovers are 1 up to rounding error
	for _, g := range heavy {
		prob[g] = 1
		alias[g] = g
	}
	for _, l := range light {
		prob[l] = 1
		alias[l] = l
	}

	return &Alias{prob: prob, alias: alias}, nil
}

// Len returns the number of outcomes
func (a *Alias) Len() int {
	return len(a.prob)
}

// Sample draws one index using one IntN and one Float64 draw from src
func (a *Alias) Sample(src random.Source) int {
	i := src.IntN(len(a.prob))
	if src.Float64() < a.prob[i] {
		return i
	}
	return a.alias[i]
}

// Probability returns the probability that bucket i keeps its own index
func (a *Alias) Probability(i int) float64 {
	return a.prob[i]
}

// AliasOf returns the index bucket i falls back to
func (a *Alias) AliasOf(i int) int {
	return a.alias[i]
}

// Distribution reconstructs the normalized weight of every index from the
// tables
func (a *Alias) Distribution() []float64 {
	n := len(a.prob)
	dist := make([]float64, n)
	for i := 0; i < n; i++ {
		dist[i] += a.prob[i] / float64(n)
		if a.alias[i] != i {
			dist[a.alias[i]] += (1 - a.prob[i]) / float64(n)
		}
	}
	return dist
}
