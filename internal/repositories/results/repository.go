// Package results stores finished optimization runs so they can be fetched
// again by run ID
package results

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=resultsmock github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/results Repository

// Record is one stored optimization run
type Record struct {
	RunID string `json:"run_id"`

	// Preset names the hyperparameters the run used
	Preset string          `json:"preset"`
	Level  int             `json:"level"`
	Class  equipment.Class `json:"class,omitempty"`
	Strict bool            `json:"strict"`

	// Items holds the best build in slot order, nil for empty slots
	Items [equipment.NumSlots]*equipment.Item `json:"items"`

	Utility          float64       `json:"utility"`
	Iterations       int           `json:"iterations"`
	Accepted         int           `json:"accepted"`
	InvalidNeighbors int           `json:"invalid_neighbors"`
	EarlyTerminated  bool          `json:"early_terminated"`
	Restarts         int           `json:"restarts"`
	Seed             uint64        `json:"seed"`
	Duration         time.Duration `json:"duration"`

	CatalogVersion string `json:"catalog_version,omitempty"`

	// Empty when the catalog has no WynnBuilder id for some item
	WynnBuilderURL string `json:"wynnbuilder_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Build returns the stored build
func (r *Record) Build() equipment.Build {
	var b equipment.Build
	for i, item := range r.Items {
		b = b.With(equipment.Slot(i), item)
	}
	return b
}

// SetBuild stores b in Items
func (r *Record) SetBuild(b equipment.Build) {
	for _, slot := range equipment.AllSlots() {
		r.Items[slot] = b.Get(slot)
	}
}

// CreateInput contains parameters for storing a run
type CreateInput struct {
	Record *Record
	TTL    time.Duration // zero uses the repository default
}

// CreateOutput contains the stored record with timestamps filled in
type CreateOutput struct {
	Record *Record
}

// GetInput contains parameters for retrieving a run
type GetInput struct {
	RunID string
}

// GetOutput contains the retrieved run
type GetOutput struct {
	Record *Record
}

// Repository defines storage for finished runs
type Repository interface {
	// Create stores a run. The record's CreatedAt and ExpiresAt are set.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a run that has not expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}
