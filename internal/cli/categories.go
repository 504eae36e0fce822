package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// categoriesCommand creates the categories command.
func (c *CLI) categoriesCommand() *cobra.Command {
	var showRules bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List registered rule categories",
		Long: `List every registered rule category: built-ins plus categories from
installed profiles. Categories marked as default apply when a conversion
names none.

Examples:
  blockswap categories
  blockswap categories --rules`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := c.newRegistry()
			if err != nil {
				return err
			}

			for _, cat := range reg.Categories() {
				name := cat.Name
				if cat.EnabledByDefault {
					name += " " + StyleDim.Render("(default)")
				}
				fmt.Println(StyleTitle.Render(name))
				if cat.Description != "" {
					printDetail("%s", cat.Description)
				}
				details := []string{fmt.Sprintf("%d rules", len(cat.Rules))}
				if len(cat.GridSizes) > 0 {
					details = append(details, "grids: "+strings.Join(cat.GridSizes, ", "))
				}
				if cat.Origin != "" {
					details = append(details, cat.Origin)
				}
				printDetail("%s", strings.Join(details, " · "))
				if showRules {
					for _, rule := range cat.Rules {
						printDetail("  %s %s %s", rule.Source, iconArrow, rule.Target)
					}
				}
				printNewline()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRules, "rules", false, "list every rule in each category")

	return cmd
}
