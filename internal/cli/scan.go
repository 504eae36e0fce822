package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/scan"
)

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		gridSize    string
		convertible bool
		interactive bool
		showAll     bool
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Discover blueprints in a directory",
		Long: `Scan a blueprint directory and list every blueprint with its grid size,
block count, and how many blocks the active categories can convert.

Examples:
  blockswap scan ~/SpaceEngineers/Blueprints/local
  blockswap scan --grid-size Large --convertible .
  blockswap scan -i .    # pick one interactively and convert it`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			reg, _, err := c.newRegistry()
			if err != nil {
				return err
			}
			lookup, err := reg.Resolve(c.loadSettings().DefaultCategories...)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			infos, err := scan.Scan(cmd.Context(), dir, lookup)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Scanned %d blueprints", len(infos)))

			filter := scan.Filter{
				GridSize:        gridSize,
				ConvertibleOnly: convertible,
				SkipConverted:   !showAll,
			}
			infos = filter.Apply(infos)

			s := c.loadSettings()
			s.TouchDir(dir)
			if err := s.Save(); err != nil {
				c.Logger.Debug("failed to save settings", "err", err)
			}

			if interactive {
				return c.scanInteractive(cmd, infos)
			}

			if len(infos) == 0 {
				printInfo("No blueprints found")
				return nil
			}
			for _, info := range infos {
				label := fmt.Sprintf("%-36s %-6s %5d blocks", truncate(info.Name, 36), info.GridSize, info.BlockCount)
				switch {
				case !info.HasDocument:
					printDetail("%s  (no document)", label)
				case info.ConvertibleCount > 0:
					printSuccess("%s  %d convertible", label, info.ConvertibleCount)
				default:
					printDetail("%s", label)
				}
			}
			printNewline()
			printNextStep("Convert one", fmt.Sprintf("%s convert <blueprint>", appName))
			return nil
		},
	}

	cmd.Flags().StringVar(&gridSize, "grid-size", "", "filter by grid size (Large, Small)")
	cmd.Flags().BoolVar(&convertible, "convertible", false, "only show blueprints with convertible blocks")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a blueprint interactively and convert it")
	cmd.Flags().BoolVar(&showAll, "all", false, "include previous conversion outputs")

	return cmd
}

// scanInteractive runs the picker and converts the chosen blueprint with
// default options.
func (c *CLI) scanInteractive(cmd *cobra.Command, infos []scan.Info) error {
	selection, err := pickBlueprint(infos)
	if err != nil {
		return err
	}
	if selection == nil {
		printInfo("Nothing selected")
		return nil
	}
	return c.runConvert(cmd, convertFlags{blueprint: selection.Info.Path})
}
