// Package catalog stores the item catalog the optimizer samples from
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/catalog Repository

import (
	"context"
	"sort"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
)

// Repository defines the interface for catalog persistence
type Repository interface {
	// Put replaces the whole catalog
	// Returns errors.InvalidArgument for nil or unnamed items
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input *PutInput) (*PutOutput, error)

	// List returns every stored item ordered by ID
	// Returns errors.NotFound when no catalog has been stored
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// PutInput defines the input for replacing the catalog
type PutInput struct {
	Items []*equipment.Item

	// WynnBuilderIDs maps item names to WynnBuilder numeric IDs; optional
	WynnBuilderIDs map[string]int

	Version string
}

// PutOutput defines the output for replacing the catalog
type PutOutput struct {
	Stored int
}

// ListInput defines the input for listing the catalog
type ListInput struct{}

// ListOutput defines the output for listing the catalog
type ListOutput struct {
	Items          []*equipment.Item
	WynnBuilderIDs map[string]int
	Version        string
}

// sortByID orders items so seeded runs sample identically across loads
func sortByID(items []*equipment.Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
