// Package gearpool groups catalog items by category and samples candidates
// for a category weighted by level and tier.
package gearpool

import (
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/random"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/sampler"
)

var tierWeights = map[equipment.Tier]float64{
	equipment.TierNormal:    1,
	equipment.TierUnique:    2,
	equipment.TierRare:      3,
	equipment.TierLegendary: 4,
	equipment.TierFabled:    5,
	equipment.TierMythic:    6,
	equipment.TierSet:       2,
}

// TierWeight returns the sampling multiplier for a tier. Unknown tiers weigh
// like Normal.
func TierWeight(t equipment.Tier) float64 {
	if w, ok := tierWeights[t]; ok {
		return w
	}
	return 1
}

// Weight returns an item's sampling weight: level times tier weight
func Weight(item *equipment.Item) float64 {
	return float64(item.Level) * TierWeight(item.Tier)
}

// Pool holds the candidates and one sampler per category. It is frozen
// after New and safe to share between concurrent searches.
type Pool struct {
	items    map[equipment.Category][]*equipment.Item
	samplers map[equipment.Category]*sampler.Alias
}

// New partitions items by category and builds a sampler for each non-empty
// category. Item order within a category follows the input order. A category
// whose weights cannot be sampled, such as one holding only level 0 items,
// gets no sampler; Sample reports NotFound for it and the slot stays empty.
func New(items []*equipment.Item) (*Pool, error) {
	p := &Pool{
		items:    make(map[equipment.Category][]*equipment.Item),
		samplers: make(map[equipment.Category]*sampler.Alias),
	}

	for i, item := range items {
		if item == nil {
			return nil, errors.InvalidArgumentf("item at index %d is nil", i)
		}
		if !item.Category.IsValid() {
			return nil, errors.InvalidArgumentf("item %q has unknown category %q", item.ID, item.Category).
				WithMeta("item", item.ID)
		}
		p.items[item.Category] = append(p.items[item.Category], item)
	}

	for category, candidates := range p.items {
		weights := make([]float64, len(candidates))
		for i, item := range candidates {
			weights[i] = Weight(item)
		}

		s, err := sampler.New(weights)
		if err != nil {
			slog.Warn("category cannot be sampled, leaving its slots empty",
				"category", string(category),
				"candidates", len(candidates),
				"error", err)
			continue
		}
		p.samplers[category] = s
	}

	return p, nil
}

// Sample draws one candidate for category. It returns a NotFound error when
// the category has no candidates or none with positive weight.
func (p *Pool) Sample(category equipment.Category, src random.Source) (*equipment.Item, error) {
	s, ok := p.samplers[category]
	if !ok {
		return nil, errors.NotFoundf("no candidates for category %s", category).
			WithMeta("category", string(category))
	}
	return p.items[category][s.Sample(src)], nil
}

// Items returns a copy of the candidates for category
func (p *Pool) Items(category equipment.Category) []*equipment.Item {
	out := make([]*equipment.Item, len(p.items[category]))
	copy(out, p.items[category])
	return out
}

// Categories lists the categories that have candidates, sorted by name
func (p *Pool) Categories() []equipment.Category {
	out := make([]equipment.Category, 0, len(p.items))
	for c := range p.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Size returns the total number of candidates across categories
func (p *Pool) Size() int {
	n := 0
	for _, items := range p.items {
		n += len(items)
	}
	return n
}
