package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/utility"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the utility presets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		for _, name := range utility.PresetNames() {
			p, err := utility.Preset(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%-16s iterations=%d temperature=%g\n", p.Name, p.MaxIterations, p.InitialTemperature)
		}
		return nil
	},
}
