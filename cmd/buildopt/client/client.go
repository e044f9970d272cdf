// Package client provides commands that call a running buildopt server
package client

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running buildopt server",
	Long:  `Client commands send requests to the optimizer gRPC service and print the JSON response.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")

	ClientCmd.AddCommand(optimizeCmd)
	ClientCmd.AddCommand(getResultCmd)
}

// UseConfiguredServer points client commands at addr unless --server was
// given on the command line
func UseConfiguredServer(cmd *cobra.Command, addr string) {
	if addr != "" && !cmd.Flags().Changed("server") {
		serverAddr = addr
	}
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// printResponse writes resp as indented JSON
func printResponse(w io.Writer, resp *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// callError unwraps a gRPC status into the project error type
func callError(op string, err error) error {
	converted := errors.FromGRPCError(err)
	return fmt.Errorf("%s failed: %w", op, converted)
}
