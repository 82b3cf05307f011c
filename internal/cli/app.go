package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/configloader"
	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/internal/ui/pretty"
	"github.com/yaklabco/mdcst/pkg/block"
	"github.com/yaklabco/mdcst/pkg/config"
	"github.com/yaklabco/mdcst/pkg/fix"
	"github.com/yaklabco/mdcst/pkg/fsutil"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	debug      bool
	color      string
	write      bool
	backup     bool
}

// app carries the resolved configuration between the root command and its
// subcommands.
type app struct {
	flags  globalFlags
	cfg    *config.Config
	styles *pretty.Styles
}

// setup resolves the configuration and attaches a logger to the command
// context. Flags only override the configuration when set explicitly.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	cliConfig := &config.Config{}
	if flags.Changed("log-level") {
		cliConfig.LogLevel = a.flags.logLevel
	}
	if a.flags.debug {
		cliConfig.LogLevel = "debug"
	}
	if flags.Changed("color") {
		cliConfig.Color = config.ColorMode(a.flags.color)
	}
	if flags.Changed("write") {
		cliConfig.Write = config.Bool(a.flags.write)
	}
	if flags.Changed("backup") {
		cliConfig.Backups.Enabled = config.Bool(a.flags.backup)
	}

	ctx := cmd.Context()
	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: a.flags.configPath,
		CLIConfig:    cliConfig,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	a.cfg = result.Config

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), a.cfg.LogLevel)
	logger.Debug("configuration loaded",
		logging.FieldPaths, result.LoadedFrom,
		logging.FieldWrite, a.cfg.ShouldWrite(),
		logging.FieldBackup, a.cfg.BackupEnabled(),
	)
	cmd.SetContext(logging.WithLogger(ctx, logger))

	a.styles = pretty.NewStyles(pretty.IsColorEnabled(a.cfg.Color, cmd.OutOrStdout()))
	return nil
}

// document is a parsed file together with what is needed to save it.
type document struct {
	path     string
	original []byte
	info     *fsutil.FileInfo
	doc      *block.DocumentBlock
}

// open reads and parses path.
func (a *app) open(ctx context.Context, path string) (*document, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	doc, err := block.ParseDocument(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	counts, err := newOutline(doc.Statement())
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("parsed document",
		append([]any{logging.FieldPath, path, logging.FieldBytes, len(content)}, counts.fields()...)...)
	return &document{path: path, original: content, info: info, doc: doc}, nil
}

// commit prints the pending edit as a diff, or saves it when writing is
// enabled.
func (a *app) commit(cmd *cobra.Command, d *document) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	edited := []byte(d.doc.String())

	if !a.cfg.ShouldWrite() {
		diff := fix.GenerateDiff(d.path, d.original, edited)
		if !diff.HasChanges() {
			logger.Info("no changes", logging.FieldPath, d.path)
			return nil
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), pretty.FormatDiff(a.styles, diff))
		return err
	}

	result, err := fsutil.Save(ctx, d.info, d.original, edited, fsutil.BackupConfig{
		Enabled: a.cfg.BackupEnabled(),
		Mode:    fsutil.BackupMode(a.cfg.Backups.Mode),
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", d.path, err)
	}

	fields := []any{logging.FieldPath, d.path, logging.FieldChanged, result.Written}
	if result.BackupPath != "" {
		fields = append(fields, logging.FieldBackup, result.BackupPath)
	}
	level := log.InfoLevel
	if !result.Written {
		level = log.DebugLevel
	}
	logger.Log(level, "saved", fields...)
	return nil
}
