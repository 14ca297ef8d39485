package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagExportOut string

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "output file (default: stdout)")
}

var exportCmd = &cobra.Command{
	Use:   "export <year> <event-code>",
	Short: "Export an event and its scouting data as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		event, err := a.catalog.Event(args[0], args[1])
		if err != nil {
			return err
		}
		doc, err := a.engine.ExportEvent(event)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if flagExportOut == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Exported %s %s to %s\n", event.Year, event.EventCode, flagExportOut)
		return nil
	},
}
