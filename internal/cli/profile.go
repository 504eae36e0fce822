package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// profileCommand creates the profile management command.
func (c *CLI) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage shareable rule profiles",
		Long: `Manage rule profiles: bundles of substitution categories that can be
shared between players. Profile categories register under
"profile:<profile>:<category>" so they never shadow built-ins.`,
	}

	cmd.AddCommand(c.profileListCommand())
	cmd.AddCommand(c.profileShowCommand())
	cmd.AddCommand(c.profileImportCommand())
	cmd.AddCommand(c.profileExportCommand())
	cmd.AddCommand(c.profileDeleteCommand())

	return cmd
}

func (c *CLI) profileListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.profileManager()
			if err != nil {
				return err
			}
			profiles := manager.List()
			if len(profiles) == 0 {
				printInfo("No profiles installed")
				printNextStep("Import one", fmt.Sprintf("%s profile import <file>", appName))
				return nil
			}
			for _, p := range profiles {
				title := p.Name
				if p.Version != "" {
					title += " " + StyleDim.Render("v"+p.Version)
				}
				fmt.Println(StyleTitle.Render(title))
				if p.Description != "" {
					printDetail("%s", p.Description)
				}
				printDetail("%d categories · %s", len(p.Categories), p.Author)
			}
			return nil
		},
	}
}

func (c *CLI) profileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a profile's categories and rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.profileManager()
			if err != nil {
				return err
			}
			p, err := manager.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(p.Name))
			printKeyValue("Author", p.Author)
			printKeyValue("Version", p.Version)
			printKeyValue("Game", p.GameVersion)
			if p.Description != "" {
				printDetail("%s", p.Description)
			}
			printNewline()
			for _, spec := range p.Categories {
				fmt.Println(StyleHighlight.Render(p.Namespace(spec.Name)))
				for _, rule := range spec.Pairs {
					printDetail("%s %s %s", rule.Source, iconArrow, rule.Target)
				}
			}
			return nil
		},
	}
}

func (c *CLI) profileImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate and install a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.profileManager()
			if err != nil {
				return err
			}
			p, err := manager.Import(args[0])
			if err != nil {
				return err
			}
			printSuccess("Imported profile %q with %d categories", p.Name, len(p.Categories))
			printNextStep("Use it", fmt.Sprintf("%s convert --profile %s -c <category> <blueprint>", appName, p.Name))
			return nil
		},
	}
}

func (c *CLI) profileExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <destination>",
		Short: "Write a profile to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.profileManager()
			if err != nil {
				return err
			}
			if err := manager.Export(args[0], args[1]); err != nil {
				return err
			}
			printSuccess("Exported profile %q", args[0])
			printFile(args[1])
			return nil
		},
	}
}

func (c *CLI) profileDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove an installed profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.profileManager()
			if err != nil {
				return err
			}
			if err := manager.Delete(args[0]); err != nil {
				return err
			}
			printSuccess("Deleted profile %q", args[0])
			return nil
		},
	}
}
