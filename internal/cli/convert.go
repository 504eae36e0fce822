package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/pipeline"
)

// convertFlags holds the command-line flags for the convert command.
type convertFlags struct {
	blueprint  string
	categories []string
	reverse    bool
	profile    string
	output     string
	dryRun     bool
	skipAudit  bool
	refresh    bool
	noCache    bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <blueprint>",
		Short: "Apply substitution rules to a blueprint",
		Long: `Convert a blueprint by substituting block identifiers according to the
selected rule categories. The original blueprint is never modified; the
converted copy is written next to it with a descriptive prefix.

Examples:
  blockswap convert ~/Blueprints/MyShip                      # light to heavy armor
  blockswap convert --reverse HEAVYARMOR_MyShip              # back again
  blockswap convert -c armor -c thrusters MyShip             # several categories
  blockswap convert --profile competitive -c hull MyShip     # profile category
  blockswap convert --dry-run MyShip                         # preview only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.blueprint = args[0]
			return c.runConvert(cmd, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.categories, "category", "c", nil, "rule categories to apply (default from settings)")
	cmd.Flags().BoolVarP(&flags.reverse, "reverse", "r", false, "apply rules target to source")
	cmd.Flags().StringVar(&flags.profile, "profile", "", "resolve categories inside this profile")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (default: next to source)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "compute and report without writing")
	cmd.Flags().BoolVar(&flags.skipAudit, "skip-audit", false, "skip the health audit")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass cached analysis")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the analysis cache")

	return cmd
}

// runConvert executes a conversion run and prints the results. Shared with
// the interactive scan picker.
func (c *CLI) runConvert(cmd *cobra.Command, flags convertFlags) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.Options{
		Blueprint:  flags.blueprint,
		Categories: flags.categories,
		Profile:    flags.profile,
		Output:     flags.output,
		DryRun:     flags.dryRun,
		SkipAudit:  flags.skipAudit,
		Refresh:    flags.refresh,
		Logger:     c.Logger,
	}
	if flags.reverse {
		opts.Direction = pipeline.DirectionReverse
	}
	if len(opts.Categories) == 0 {
		opts.Categories = c.loadSettings().DefaultCategories
	}

	spinner := newSpinnerWithContext(cmd.Context(), "Converting "+flags.blueprint)
	spinner.Start()
	result, err := runner.Execute(cmd.Context(), opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if result.Changes.NoOp() {
		printInfo("Nothing to convert: no block matched the selected categories")
		return nil
	}

	printSuccess("Converted %s", flags.blueprint)
	printStats(result.Stats.BlockCount, result.Changes.Replaced, result.CacheInfo.BeforeHit && result.CacheInfo.AfterHit)
	printApplied(result)
	printNewline()

	printKeyValue("PCU", fmt.Sprintf("%d → %d", result.Before.PCU, result.After.PCU))
	printKeyValue("Mass", fmt.Sprintf("%.0f → %.0f", result.Before.Mass, result.After.Mass))
	printDelta("PCU delta", float64(result.Delta.PCU))
	printDelta("Mass delta", result.Delta.Mass)

	if len(result.Findings) > 0 {
		printNewline()
		for _, finding := range result.Findings {
			printFinding(finding)
		}
	}

	if result.OutputPath != "" {
		printNewline()
		printFile(result.OutputPath)
		s := c.loadSettings()
		s.TouchBlueprint(flags.blueprint)
		if err := s.Save(); err != nil {
			c.Logger.Debug("failed to save settings", "err", err)
		}
	}
	return nil
}

// printApplied lists the applied rules with counts, most-used first.
func printApplied(result *pipeline.Result) {
	type entry struct {
		rule  string
		count int
	}
	var entries []entry
	for rule, count := range result.Changes.Applied {
		entries = append(entries, entry{rule: rule.String(), count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].rule < entries[j].rule
	})
	shown := entries
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, e := range shown {
		printDetail("%s ×%d", strings.ReplaceAll(e.rule, " -> ", " "+iconArrow+" "), e.count)
	}
	if len(entries) > len(shown) {
		printDetail("… and %d more rules", len(entries)-len(shown))
	}
}
