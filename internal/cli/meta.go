package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/pkg/span"
)

func newMetaCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Read and edit inline key:: value metadata",
	}

	cmd.AddCommand(newMetaGetCommand(app))
	cmd.AddCommand(newMetaRemoveCommand(app))

	return cmd
}

func newMetaGetCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE KEY",
		Short: "Print every value of a metadata key, one per line",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			items := span.MetadataItems(d.doc.Statement()).FindAll(span.Key(args[1]))
			if len(items) == 0 {
				return fmt.Errorf("%s: %w: %s", d.path, ErrKeyNotFound, args[1])
			}
			for _, item := range items {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), item.Value()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newMetaRemoveCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm FILE KEY",
		Aliases: []string{"remove"},
		Short:   "Remove metadata items, or a section with everything under it",
		Long: `Remove every metadata item whose key is KEY and every section whose title
is KEY. A removed section takes its subsections and their metadata with it.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			removed, err := span.MetadataTree(d.doc).Remove(args[1])
			if err != nil {
				return err
			}
			if removed == 0 {
				return fmt.Errorf("%s: %w: %s", d.path, ErrKeyNotFound, args[1])
			}
			logging.FromContext(cmd.Context()).Debug("removed metadata",
				logging.FieldKey, args[1],
				logging.FieldRemoved, removed,
			)
			return app.commit(cmd, d)
		},
	}
}
