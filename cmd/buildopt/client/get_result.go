package client

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/handlers/optimizer/v1alpha1"
)

var getResultCmd = &cobra.Command{
	Use:   "get-result [run_id]",
	Short: "Fetch a stored optimization run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		req, err := structpb.NewStruct(map[string]any{v1alpha1.FieldRunID: args[0]})
		if err != nil {
			return err
		}

		resp, err := v1alpha1.NewOptimizerServiceClient(conn).GetResult(ctx, req)
		if err != nil {
			return callError("get-result", err)
		}
		return printResponse(cmd.OutOrStdout(), resp)
	},
}
