package catalog

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu      sync.RWMutex
	stored  bool
	items   []*equipment.Item
	ids     map[string]int
	version string
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{}
}

var _ Repository = (*InMemoryRepository)(nil)

// Put replaces the catalog
func (r *InMemoryRepository) Put(_ context.Context, input *PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	items := slices.Clone(input.Items)
	sortByID(items)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.stored = true
	r.items = items
	r.ids = maps.Clone(input.WynnBuilderIDs)
	r.version = input.Version

	return &PutOutput{Stored: len(items)}, nil
}

// List returns the stored catalog
func (r *InMemoryRepository) List(_ context.Context, _ *ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.stored {
		return nil, errors.NotFound("no catalog has been imported")
	}

	ids := maps.Clone(r.ids)
	if ids == nil {
		ids = map[string]int{}
	}
	return &ListOutput{
		Items:          slices.Clone(r.items),
		WynnBuilderIDs: ids,
		Version:        r.version,
	}, nil
}
