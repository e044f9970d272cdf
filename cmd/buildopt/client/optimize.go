package client

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/handlers/optimizer/v1alpha1"
)

var optimizeReq struct {
	preset        string
	level         int
	class         string
	strict        bool
	restarts      int
	seed          uint64
	maxIterations int
	temperature   float64
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Request an optimization",
	RunE:  runOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVar(&optimizeReq.preset, "preset", "ehp", "utility preset")
	f.IntVar(&optimizeReq.level, "level", 106, "target character level")
	f.StringVar(&optimizeReq.class, "class", "", "restrict the build to a class")
	f.BoolVar(&optimizeReq.strict, "strict", true, "check equip order")
	f.IntVar(&optimizeReq.restarts, "restarts", 0, "number of independent seeded runs")
	f.Uint64Var(&optimizeReq.seed, "seed", 0, "seed for the first run, 0 draws one")
	f.IntVar(&optimizeReq.maxIterations, "max-iterations", 0, "override the preset's iteration count")
	f.Float64Var(&optimizeReq.temperature, "temperature", 0, "override the preset's initial temperature")
}

// optimizeRequest builds the request document from flags
func optimizeRequest() (*structpb.Struct, error) {
	fields := map[string]any{
		v1alpha1.FieldPreset: optimizeReq.preset,
		v1alpha1.FieldLevel:  optimizeReq.level,
		v1alpha1.FieldStrict: optimizeReq.strict,
	}
	if optimizeReq.class != "" {
		fields[v1alpha1.FieldClass] = optimizeReq.class
	}
	if optimizeReq.restarts > 0 {
		fields[v1alpha1.FieldRestarts] = optimizeReq.restarts
	}
	if optimizeReq.seed != 0 {
		fields[v1alpha1.FieldSeed] = strconv.FormatUint(optimizeReq.seed, 10)
	}
	if optimizeReq.maxIterations > 0 {
		fields[v1alpha1.FieldMaxIterations] = optimizeReq.maxIterations
	}
	if optimizeReq.temperature > 0 {
		fields[v1alpha1.FieldInitialTemperature] = optimizeReq.temperature
	}
	return structpb.NewStruct(fields)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close connection", "error", err)
		}
	}()

	req, err := optimizeRequest()
	if err != nil {
		return err
	}

	resp, err := v1alpha1.NewOptimizerServiceClient(conn).Optimize(ctx, req)
	if err != nil {
		return callError("optimize", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}
