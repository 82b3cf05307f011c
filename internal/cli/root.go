// Package cli provides the Cobra command structure for mdcst.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdcst command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:   "mdcst",
		Short: "Lossless Markdown scanner, parser and editor",
		Long: `mdcst reads Markdown notes into a concrete syntax tree that reproduces the
source byte for byte, and edits them in place: frontmatter keys, inline
key:: value metadata, tables and code fences.

Edits print a unified diff unless --write is given. Written files keep a
sidecar backup when backups are enabled.`,
		PersistentPreRunE: app.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.configPath, "config", "", "path to config file (replaces project config)")
	flags.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&app.flags.debug, "debug", false, "enable debug logging")
	flags.StringVar(&app.flags.color, "color", "auto", "colorize output: auto, always, never")
	flags.BoolVarP(&app.flags.write, "write", "w", false, "write edits to the file instead of printing a diff")
	flags.BoolVar(&app.flags.backup, "backup", false, "keep a backup of files before the first write")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%w", err)
	})

	rootCmd.AddCommand(newTokensCommand(app))
	rootCmd.AddCommand(newTreeCommand(app))
	rootCmd.AddCommand(newCheckCommand(app))
	rootCmd.AddCommand(newFrontmatterCommand(app))
	rootCmd.AddCommand(newMetaCommand(app))
	rootCmd.AddCommand(newTableCommand(app))
	rootCmd.AddCommand(newCodeCommand(app))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter().ApplyToCommand(rootCmd)

	return rootCmd
}
