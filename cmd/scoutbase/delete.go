package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagDeleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&flagDeleteYes, "yes", "y", false, "skip confirmation prompt")
}

var deleteCmd = &cobra.Command{
	Use:   "delete <year> <event-code>",
	Short: "Delete an event and all its scouting data",
	Long: `Delete an event together with its teams, match schedule, and every
season-specific scouting record, in one atomic transaction.`,
	Args: cobra.ExactArgs(2),
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

		if !flagDeleteYes {
			fmt.Printf("Delete event %s %s (%s) and all its scouting data? [y/N] ", event.Year, event.EventCode, event.Name)
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := a.catalog.DeleteEvent(event); err != nil {
			return err
		}
		fmt.Printf("Deleted %s %s\n", event.Year, event.EventCode)
		return nil
	},
}
