// Package main is the entry point for the buildopt command
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-build-optimizer/cmd/buildopt/client"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/config"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// appConfig is loaded before any subcommand runs
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "buildopt",
	Short: "Gear build optimizer",
	Long: `buildopt searches an item catalog for gear builds that maximize a chosen
utility (effective health, melee or spell damage, or a balance of both) while
staying wearable at a target level.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json or text")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// setup loads configuration and installs the default logger
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(newLogger(cfg.Logging, os.Stderr))
	client.UseConfiguredServer(cmd, cfg.Server.Address)
	appConfig = cfg
	return nil
}
