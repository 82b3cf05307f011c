package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/internal/ui/pretty"
	"github.com/yaklabco/mdcst/pkg/fsutil"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

func newTokensCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Long: `Scan a file and print one row per token: index, line:column, kind,
lexeme and decoded literal. Joining the lexemes reproduces the file.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			content, _, err := fsutil.ReadFile(ctx, args[0])
			if err != nil {
				return err
			}

			tokens := scanner.Scan(string(content))
			logging.FromContext(ctx).Debug("scanned",
				logging.FieldPath, args[0],
				logging.FieldTokens, len(tokens),
			)

			width := pretty.TerminalWidth(cmd.OutOrStdout())
			_, err = fmt.Fprint(cmd.OutOrStdout(), pretty.NewTokenFormatter(app.styles, width).Format(tokens))
			return err
		},
	}
}
