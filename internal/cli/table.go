package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/pkg/span"
)

func newTableCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Edit pipe tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "fmt FILE",
		Aliases: []string{"format"},
		Short:   "Align the columns of every table",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tables := span.Tables(d.doc.Statement()).Blocks()
			for _, table := range tables {
				table.Format()
			}
			logging.FromContext(cmd.Context()).Debug("formatted tables",
				logging.FieldPath, d.path,
				logging.FieldTables, len(tables),
			)
			return app.commit(cmd, d)
		},
	})

	return cmd
}
