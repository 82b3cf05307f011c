package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/ui/pretty"
)

func newTreeCommand(app *app) *cobra.Command {
	var showTokens bool

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the syntax tree of a file",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			formatter := pretty.NewTreeFormatter(app.styles, pretty.TreeOptions{
				Tokens: showTokens,
				Width:  pretty.TerminalWidth(cmd.OutOrStdout()),
			})
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatter.Format(d.doc.Statement()))
			return err
		},
	}

	cmd.Flags().BoolVarP(&showTokens, "tokens", "t", false, "include the tokens under each statement")

	return cmd
}
