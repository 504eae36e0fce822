package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/analytics"
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/pipeline"
)

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var (
		csvPath string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "diff <blueprint-a> <blueprint-b>",
		Short: "Compare two blueprints resource by resource",
		Long: `Compare the resource requirements of two blueprints, typically an
original and its converted copy. Deltas are reported per tier along with
PCU and mass.

Examples:
  blockswap diff MyShip HEAVYARMOR_MyShip
  blockswap diff --csv report.csv MyShip HEAVYARMOR_MyShip`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			reports := make([]*analytics.Report, 2)
			for i, path := range args {
				doc, err := blueprint.Load(path)
				if err != nil {
					return err
				}
				opts := pipeline.Options{Blueprint: path, Logger: c.Logger}
				reports[i], err = runner.Analyze(cmd.Context(), doc, opts)
				if err != nil {
					return err
				}
			}
			before, after := reports[0], reports[1]
			delta := analytics.Delta(before, after)

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				if err := analytics.WriteComparisonCSV(f, before, after, delta); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				printSuccess("Wrote comparison")
				printFile(csvPath)
				return nil
			}

			if delta.Zero() {
				printInfo("Blueprints have identical resource requirements")
				return nil
			}
			return analytics.WriteComparisonText(os.Stdout, before, after, delta)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write the comparison as CSV to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache")

	return cmd
}
