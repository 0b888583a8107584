package main

import (
	"fmt"

	"github.com/repograb/repograb/internal/strategy"
	"github.com/spf13/cobra"
)

// newStrategiesCmd creates the strategies command
func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available acquisition strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Listing needs no clients; descriptions are static.
			reg := strategy.NewRegistry(nil, nil, nil, globalCfg.GitHub.Host, logger)

			fmt.Println("Available strategies:")
			fmt.Println()
			for _, name := range reg.Names() {
				s, _ := reg.Get(name)
				marker := " "
				if name == globalCfg.Defaults.Strategy {
					marker = "*"
				}
				fmt.Printf("  %s %-10s %s\n", marker, name, s.Description())
			}
			fmt.Println()
			fmt.Println("* = configured default")
			return nil
		},
	}
}
