// Package cli implements the blockswap command-line interface.
//
// This package provides commands for scanning blueprint directories,
// converting blueprints between block variants, analyzing resource costs,
// auditing grid health, and managing rule profiles. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - scan: Discover blueprints in a directory
//   - convert: Apply substitution rules to a blueprint
//   - analyze: Compute tiered resource costs
//   - diff: Compare two blueprints resource by resource
//   - audit: Run health rules against a blueprint
//   - categories: List registered rule categories
//   - profile: Manage shareable rule profiles
//   - graph: Render a resource decomposition graph
//   - history: Inspect and undo past conversions
//   - cache: Manage the analysis cache
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/pkg/buildinfo"
	"github.com/blockswap/blockswap/pkg/cache"
	"github.com/blockswap/blockswap/pkg/costdb"
	"github.com/blockswap/blockswap/pkg/history"
	"github.com/blockswap/blockswap/pkg/mapping"
	"github.com/blockswap/blockswap/pkg/mapping/builtin"
	"github.com/blockswap/blockswap/pkg/pipeline"
	"github.com/blockswap/blockswap/pkg/profile"
	"github.com/blockswap/blockswap/pkg/settings"
)

// appName is the application name used for directories and display.
const appName = "blockswap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Settings *settings.Settings
}

// New creates a new CLI instance with a default logger. Settings load
// lazily so `--help` never touches the filesystem.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blockswap converts blueprints between block variants",
		Long:         `Blockswap is a CLI tool for converting structured blueprint documents between block variants (light to heavy armor and back), with resource cost analytics and grid health audits.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.auditCommand())
	root.AddCommand(c.categoriesCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadSettings returns the persisted settings, loading them on first use.
func (c *CLI) loadSettings() *settings.Settings {
	if c.Settings != nil {
		return c.Settings
	}
	s, err := settings.Load("")
	if err != nil {
		c.Logger.Warn("failed to load settings, using defaults", "err", err)
		s = settings.Defaults()
	}
	c.Settings = s
	return s
}

// newRegistry builds the category registry: built-in categories plus every
// profile discovered in the profile directory.
func (c *CLI) newRegistry() (*mapping.Registry, *profile.Manager, error) {
	reg, err := builtin.Registry()
	if err != nil {
		return nil, nil, err
	}
	manager, err := c.profileManager()
	if err != nil {
		return nil, nil, err
	}
	if err := manager.RegisterAll(reg); err != nil {
		return nil, nil, err
	}
	return reg, manager, nil
}

// profileManager opens the profile directory from settings or its default
// location.
func (c *CLI) profileManager() (*profile.Manager, error) {
	dir := c.loadSettings().ProfileDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".config", appName, "profiles")
	}
	return profile.NewManager(dir)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	reg, _, err := c.newRegistry()
	if err != nil {
		return nil, err
	}
	store, err := history.NewFileStore("")
	if err != nil {
		c.Logger.Warn("history disabled", "err", err)
	}

	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger, reg, costdb.Default())
	if store != nil {
		runner.History = store
	}
	return runner, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/blockswap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
