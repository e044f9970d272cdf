package results

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage. Expired
// runs are dropped when read.
type InMemoryRepository struct {
	mu      sync.Mutex
	clock   clock.Clock
	ttl     time.Duration
	records map[string]Record
}

// NewInMemory creates a new in-memory repository. A nil clock uses the real
// clock and a zero ttl uses DefaultTTL.
func NewInMemory(clk clock.Clock, ttl time.Duration) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemoryRepository{
		clock:   clk,
		ttl:     ttl,
		records: make(map[string]Record),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a run
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	record, _, err := stamp(input, r.clock.Now(), r.ttl)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.RunID] = *record

	return &CreateOutput{Record: record}, nil
}

// Get retrieves a run by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[input.RunID]
	if !ok {
		return nil, errors.NotFoundf("run %s not found", input.RunID).
			WithMeta("run_id", input.RunID)
	}
	if r.clock.Now().After(record.ExpiresAt) {
		delete(r.records, input.RunID)
		return nil, errors.NotFoundf("run %s has expired", input.RunID).
			WithMeta("run_id", input.RunID)
	}

	return &GetOutput{Record: &record}, nil
}
