package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/audit"
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/pipeline"
)

// auditCommand creates the audit command.
func (c *CLI) auditCommand() *cobra.Command {
	var applyFixes bool

	cmd := &cobra.Command{
		Use:   "audit <blueprint>",
		Short: "Run health rules against a blueprint",
		Long: `Audit a blueprint for operational problems: missing control blocks,
missing power sources, unbalanced thrust, and unknown block subtypes.

With --fix, findings that carry an automatic fix are applied and the
repaired blueprint is saved in place.

Examples:
  blockswap audit ~/Blueprints/MyShip
  blockswap audit --fix MyShip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := blueprint.Load(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{Blueprint: args[0], Logger: c.Logger}
			findings, err := runner.Audit(doc, opts)
			if err != nil {
				return err
			}

			if len(findings) == 0 {
				printSuccess("No findings: %s looks healthy", doc.Name)
				return nil
			}

			for _, finding := range findings {
				printFinding(finding)
			}

			if !applyFixes {
				if hasFixable(findings) {
					printNewline()
					printNextStep("Apply automatic fixes", fmt.Sprintf("%s audit --fix %s", appName, args[0]))
				}
				return nil
			}

			fixed := 0
			for _, finding := range findings {
				if finding.FixID == "" {
					continue
				}
				doc, err = audit.ApplyFix(doc, finding.FixID)
				if err != nil {
					return err
				}
				fixed++
			}
			if fixed == 0 {
				printInfo("No automatic fixes available")
				return nil
			}
			if err := blueprint.Save(doc, documentPath(args[0])); err != nil {
				return err
			}
			printSuccess("Applied %d fix(es)", fixed)
			printFile(documentPath(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&applyFixes, "fix", false, "apply automatic fixes and save")

	return cmd
}

func hasFixable(findings []audit.Finding) bool {
	for _, f := range findings {
		if f.FixID != "" {
			return true
		}
	}
	return false
}

// documentPath resolves a blueprint argument to its document file.
func documentPath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, "bp.sbc")
	}
	return path
}
