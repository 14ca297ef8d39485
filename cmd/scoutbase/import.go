package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frc-tools/scoutbase/internal/transfer"
	"github.com/frc-tools/scoutbase/pkg/types"
)

var (
	flagImportMerge      bool
	flagImportOnConflict string
)

func init() {
	importCmd.Flags().BoolVar(&flagImportMerge, "merge", false, "merge into existing local data instead of replacing")
	importCmd.Flags().StringVar(&flagImportOnConflict, "on-conflict", "keep-local",
		"conflict resolution under --merge: keep-local or accept-incoming")
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import an event document from a JSON file",
	Long: `Import an event document produced by 'scoutbase export' (or hand-edited).

By default existing data for the event is replaced wholesale. With --merge,
incoming season records are reconciled against local ones per record: new
records are inserted, identical records are left alone, and conflicting
records are resolved by --on-conflict.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolution, err := conflictAction(flagImportOnConflict)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var doc types.EventDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if !flagImportMerge {
			if _, err := a.engine.ImportDocument(&doc, transfer.ModeReplaceAll); err != nil {
				return err
			}
			fmt.Printf("Imported %s %s\n", doc.Event.Year, doc.Event.EventCode)
			return nil
		}

		plan, err := a.engine.ImportDocument(&doc, transfer.ModeMergeExisting)
		if err != nil {
			return err
		}

		decisions := make(map[string][]types.MergeDecision)
		var inserts, conflicts, kept int
		for key, session := range plan.Sessions {
			for _, cand := range session.Candidates {
				d := types.MergeDecision{Key: cand.Key}
				switch cand.Suggested {
				case types.MergeInsert:
					d.Action = types.DecideInsert
					inserts++
				case types.MergeConflict:
					d.Action = resolution
					conflicts++
				default:
					d.Action = types.DecideKeepLocal
					kept++
				}
				decisions[key] = append(decisions[key], d)
			}
		}

		if err := a.engine.CompleteImport(plan, decisions); err != nil {
			return err
		}
		fmt.Printf("Merged %s %s: %d inserted, %d conflicts resolved (%s), %d kept\n",
			doc.Event.Year, doc.Event.EventCode, inserts, conflicts, flagImportOnConflict, kept)
		return nil
	},
}

// conflictAction maps the --on-conflict flag to a merge decision action.
func conflictAction(flag string) (string, error) {
	switch flag {
	case "keep-local":
		return types.DecideKeepLocal, nil
	case "accept-incoming":
		return types.DecideAcceptIncoming, nil
	default:
		return "", fmt.Errorf("invalid --on-conflict value %q (want keep-local or accept-incoming)", flag)
	}
}
