package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				fmt.Printf("# loaded from %s\n", cfgPath)
			} else {
				fmt.Println("# built-in defaults (no config file found)")
			}

			data, err := yaml.Marshal(globalCfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))

			fmt.Println()
			fmt.Printf("# resolved clone timeout: %s\n", globalCfg.CloneTimeout())
			fmt.Printf("# resolved api timeout:   %s\n", globalCfg.APITimeout())
			fmt.Printf("# resolved history db:    %s\n", globalCfg.HistoryDBPath())
			return nil
		},
	}
}
