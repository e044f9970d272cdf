// Package v1alpha1 handles the optimizer grpc service interface
package v1alpha1

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/orchestrators/optimizer"
)

// Request and response field names
const (
	FieldPreset             = "preset"
	FieldLevel              = "level"
	FieldClass              = "class"
	FieldStrict             = "strict"
	FieldRestarts           = "restarts"
	FieldWorkers            = "workers"
	FieldSeed               = "seed"
	FieldMaxIterations      = "max_iterations"
	FieldInitialTemperature = "initial_temperature"
	FieldMaxInvalidRetry    = "max_invalid_retry"

	FieldRunID            = "run_id"
	FieldBuild            = "build"
	FieldUtility          = "utility"
	FieldIterations       = "iterations"
	FieldAccepted         = "accepted"
	FieldInvalidNeighbors = "invalid_neighbors"
	FieldEarlyTerminated  = "early_terminated"
	FieldDurationMs       = "duration_ms"
	FieldCatalogVersion   = "catalog_version"
	FieldWynnDataURL      = "wynndata_url"
	FieldWynnBuilderURL   = "wynnbuilder_url"
	FieldCreatedAt        = "created_at"
	FieldExpiresAt        = "expires_at"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	OptimizerService optimizer.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.OptimizerService == nil {
		return errors.InvalidArgument("optimizer service is required")
	}
	return nil
}

// Handler implements the optimizer gRPC service
type Handler struct {
	optimizerService optimizer.Service
}

var _ OptimizerServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		optimizerService: cfg.OptimizerService,
	}, nil
}

// Optimize runs an optimization. preset and level are required; class,
// strict, restarts, workers, seed, max_iterations, initial_temperature and
// max_invalid_retry are optional. seed may be a number or a decimal string.
func (h *Handler) Optimize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newReader(req)
	input := &optimizer.OptimizeInput{
		Preset:             r.String(FieldPreset, true),
		Level:              r.Int(FieldLevel, true),
		Class:              r.String(FieldClass, false),
		Strict:             r.Bool(FieldStrict),
		Restarts:           r.Int(FieldRestarts, false),
		Workers:            r.Int(FieldWorkers, false),
		Seed:               r.Uint64(FieldSeed),
		MaxIterations:      r.Int(FieldMaxIterations, false),
		InitialTemperature: r.Number(FieldInitialTemperature),
		MaxInvalidRetry:    r.Int(FieldMaxInvalidRetry, false),
	}
	if err := r.Err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.optimizerService.Optimize(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		FieldRunID:            output.RunID,
		FieldBuild:            buildToMap(output.Build),
		FieldUtility:          output.Utility,
		FieldIterations:       output.Iterations,
		FieldAccepted:         output.Accepted,
		FieldInvalidNeighbors: output.InvalidNeighbors,
		FieldEarlyTerminated:  output.EarlyTerminated,
		FieldSeed:             formatSeed(output.Seed),
		FieldDurationMs:       output.Duration.Milliseconds(),
		FieldCatalogVersion:   output.CatalogVersion,
		FieldWynnDataURL:      output.WynnDataURL,
		FieldWynnBuilderURL:   output.WynnBuilderURL,
	})
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return resp, nil
}

// GetResult returns a stored run by run_id
func (h *Handler) GetResult(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newReader(req)
	runID := r.String(FieldRunID, true)
	if err := r.Err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.optimizerService.GetResult(ctx, &optimizer.GetResultInput{RunID: runID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	rec := output.Record
	resp, err := structpb.NewStruct(map[string]any{
		FieldRunID:            rec.RunID,
		FieldPreset:           rec.Preset,
		FieldLevel:            rec.Level,
		FieldClass:            string(rec.Class),
		FieldStrict:           rec.Strict,
		FieldRestarts:         rec.Restarts,
		FieldBuild:            buildToMap(rec.Build()),
		FieldUtility:          rec.Utility,
		FieldIterations:       rec.Iterations,
		FieldAccepted:         rec.Accepted,
		FieldInvalidNeighbors: rec.InvalidNeighbors,
		FieldEarlyTerminated:  rec.EarlyTerminated,
		FieldSeed:             formatSeed(rec.Seed),
		FieldDurationMs:       rec.Duration.Milliseconds(),
		FieldCatalogVersion:   rec.CatalogVersion,
		FieldWynnDataURL:      output.WynnDataURL,
		FieldWynnBuilderURL:   rec.WynnBuilderURL,
		FieldCreatedAt:        rec.CreatedAt.UTC().Format(time.RFC3339),
		FieldExpiresAt:        rec.ExpiresAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return resp, nil
}

// buildToMap maps occupied slot names to item names
func buildToMap(b equipment.Build) map[string]any {
	out := make(map[string]any, equipment.NumSlots)
	for _, slot := range b.Occupied() {
		out[slot.String()] = b.Get(slot).ID
	}
	return out
}
