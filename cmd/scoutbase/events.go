package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List known events",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		events := a.catalog.Events()
		if flagJSON {
			return printJSON(events)
		}

		if len(events) == 0 {
			fmt.Println("No events. Import one with 'scoutbase import' or 'scoutbase tba import'.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "YEAR\tCODE\tNAME\tSOURCE\tGAME")
		for _, e := range events {
			gameName := "-"
			if g, ok := a.catalog.Game(e.Year); ok {
				gameName = g.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Year, e.EventCode, e.Name, e.Source, gameName)
		}
		return w.Flush()
	},
}
