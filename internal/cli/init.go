package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/configloader"
	"github.com/yaklabco/mdcst/internal/logging"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented mdcst configuration file",
		Long: `Create a new .mdcst.yml configuration file in the current directory. Every
setting is present with its default value and a short description.

Examples:
  mdcst init                      Create .mdcst.yml
  mdcst init --output notes.yml   Write to a custom file path
  mdcst init --force              Overwrite an existing file`,
		Args: usageArgs(cobra.NoArgs),
		// Runs without loading the configuration it may be replacing.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	if err := configloader.WriteTemplate(flags.output, flags.force); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
