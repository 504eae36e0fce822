package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/analytics"
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/pipeline"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		asJSON  bool
		tier    int
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <blueprint>",
		Short: "Compute tiered resource costs for a blueprint",
		Long: `Analyze a blueprint's resource requirements: blocks, then the components
to weld them, the ingots to build the components, and the ores to refine
the ingots. Totals include PCU and mass.

Examples:
  blockswap analyze ~/Blueprints/MyShip
  blockswap analyze --tier 3 MyShip      # ores only
  blockswap analyze --json MyShip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := blueprint.Load(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{Blueprint: args[0], Refresh: refresh, Logger: c.Logger}
			report, hit, err := runner.AnalyzeWithCacheInfo(cmd.Context(), doc, opts)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			printSuccess("Analyzed %s", report.Blueprint)
			printStats(report.BlockCount, 0, hit)
			printNewline()
			printKeyValue("Grid size", report.GridSize)
			printKeyValue("PCU", fmt.Sprintf("%d", report.PCU))
			printKeyValue("Mass", fmt.Sprintf("%.0f kg", report.Mass))
			printNewline()

			if tier >= 0 {
				printTier(report, tier)
			} else {
				for t := analytics.TierComponents; t < len(report.Tiers); t++ {
					printTier(report, t)
					printNewline()
				}
			}

			if len(report.Unpriced) > 0 {
				printWarning("%d subtypes without cost data", len(report.Unpriced))
				for _, id := range report.Unpriced {
					printDetail("%s", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full report as JSON")
	cmd.Flags().IntVar(&tier, "tier", -1, "show a single tier (0=blocks, 1=components, 2=ingots, 3=ores)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached analysis")

	return cmd
}

// printTier prints one tier of a report sorted by descending quantity.
func printTier(report *analytics.Report, tier int) {
	name := fmt.Sprintf("tier %d", tier)
	if tier < len(analytics.TierNames) {
		name = analytics.TierNames[tier]
	}
	fmt.Println(StyleTitle.Render(name))

	quantities := report.Tier(tier)
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if quantities[ids[i]] != quantities[ids[j]] {
			return quantities[ids[i]] > quantities[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		printDetail("%-40s %12.1f", id, quantities[id])
	}
}
