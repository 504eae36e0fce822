package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/history"
	"github.com/blockswap/blockswap/pkg/pipeline"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and undo past conversions",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyUndoCommand())

	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewFileStore("")
			if err != nil {
				return err
			}
			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No recorded runs")
				return nil
			}
			for _, run := range runs {
				fmt.Println(StyleHighlight.Render(run.ID[:8]) + " " + StyleValue.Render(run.Blueprint))
				printDetail("%s · %s · %d replaced",
					run.Timestamp.Local().Format("2006-01-02 15:04"),
					run.Direction,
					run.Replaced)
				if run.Output != "" {
					printDetail("%s %s", iconArrow, run.Output)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list")

	return cmd
}

func (c *CLI) historyUndoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <run-id>",
		Short: "Delete the output of a recorded run",
		Long: `Undo a conversion by deleting its output folder. The run ID prefix from
"history list" is enough. Originals are never touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewFileStore("")
			if err != nil {
				return err
			}
			run, err := findRun(cmd, store, args[0])
			if err != nil {
				return err
			}
			if run.Output == "" {
				printInfo("Run %s wrote no output (dry run)", run.ID[:8])
				return nil
			}
			if err := pipeline.RemoveOutput(run.Output); err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), run.ID); err != nil {
				return err
			}
			printSuccess("Removed %s", run.Output)
			return nil
		},
	}
}

// findRun resolves a possibly-abbreviated run ID.
func findRun(cmd *cobra.Command, store history.Store, id string) (*history.Run, error) {
	if run, err := store.Get(cmd.Context(), id); err == nil {
		return run, nil
	}
	runs, err := store.List(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}
	var match *history.Run
	for _, run := range runs {
		if len(id) > 0 && len(run.ID) >= len(id) && run.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("run ID %q is ambiguous", id)
			}
			match = run
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no run matching %q", id)
	}
	return match, nil
}
