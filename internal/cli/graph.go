package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/costdb"
	"github.com/blockswap/blockswap/pkg/render/costgraph"
)

// graphCommand creates the graph rendering command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output     string
		format     string
		quantities bool
		maxNodes   int
	)

	cmd := &cobra.Command{
		Use:   "graph <blueprint>",
		Short: "Render a resource decomposition graph",
		Long: `Render the blueprint's resource decomposition as a directed graph:
blocks at the top, components below, then ingots and raw ores.

Formats: svg, png, dot.

Examples:
  blockswap graph MyShip -o ship.svg
  blockswap graph --format dot MyShip      # DOT source to stdout
  blockswap graph --quantities MyShip -o ship.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := blueprint.Load(args[0])
			if err != nil {
				return err
			}

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
				if format == "" {
					format = "svg"
				}
			}

			dot := costgraph.ToDOT(costdb.Default(), doc.PartCounts(), costgraph.Options{
				Quantities: quantities,
				MaxNodes:   maxNodes,
			})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = costgraph.RenderSVG(dot)
			case "png":
				data, err = costgraph.RenderPNG(dot)
			default:
				return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered %s graph", format)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", "", "output format: svg, png, dot (default from extension)")
	cmd.Flags().BoolVar(&quantities, "quantities", false, "label edges with quantities")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "truncate graphs larger than this many nodes")

	return cmd
}
