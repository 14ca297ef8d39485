package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frc-tools/scoutbase/internal/tba"
)

var tbaCmd = &cobra.Command{
	Use:   "tba",
	Short: "Interact with The Blue Alliance API",
}

func init() {
	tbaCmd.AddCommand(tbaImportCmd)
}

var tbaImportCmd = &cobra.Command{
	Use:   "import <year> <event-code>",
	Short: "Import an event's teams and match schedule from The Blue Alliance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tbaAPIKey == "" {
			return fmt.Errorf("no TBA API key configured (set tba.api_key in config.yaml)")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		client := tba.New(tbaBaseURL, tbaAPIKey, logger)
		if err := a.engine.ImportFromAPI(cmd.Context(), client, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Imported %s %s from The Blue Alliance\n", args[0], args[1])
		return nil
	},
}
