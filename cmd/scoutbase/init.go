package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize scoutbase storage",
	Long:  "Create configuration and data directories, then initialize the storage backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		fmt.Printf("Initialized scoutbase storage in %s\n", dataDir)
		for _, info := range a.registry.Games() {
			fmt.Printf("  season %s: %s\n", info.Year, info.Name)
		}
		return nil
	},
}
