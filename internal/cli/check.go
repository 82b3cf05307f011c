package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/internal/ui/pretty"
	"github.com/yaklabco/mdcst/pkg/fsutil"
	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
	"github.com/yaklabco/mdcst/pkg/runner"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

var (
	errTokensLossy = errors.New("token lexemes do not reproduce the source")
	errTreeLossy   = errors.New("syntax tree does not reproduce the source")
)

// checkFlags holds the flags for the check command.
type checkFlags struct {
	jobs    int
	exclude []string
	follow  bool
}

func newCheckCommand(app *app) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [PATH...]",
		Short: "Verify that files parse and round-trip losslessly",
		Long: `Scan and parse each Markdown file, then verify that both the token stream
and the syntax tree reproduce the file byte for byte. Directories are searched
recursively; hidden files and directories are skipped.

Exits non-zero if any file fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := logging.FromContext(ctx)

			run, err := runner.Run(ctx, runner.Options{
				Paths:          args,
				ExcludeGlobs:   flags.exclude,
				FollowSymlinks: flags.follow,
				Jobs:           flags.jobs,
			}, checkFile)
			if err != nil {
				return err
			}
			logger.Debug("discovered files", logging.FieldFiles, run.Discovered)

			results := make([]pretty.CheckResult, 0, len(run.Files))
			for _, outcome := range run.Files {
				result := outcome.Value
				result.Path = outcome.Path
				result.Err = outcome.Err
				if result.Err != nil {
					logger.Debug("check failed", logging.FieldPath, result.Path, logging.FieldError, result.Err)
				}
				results = append(results, result)
			}

			if _, err := fmt.Fprint(cmd.OutOrStdout(), pretty.FormatCheck(app.styles, results)); err != nil {
				return err
			}
			if run.HasFailures() {
				return ErrCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files checked in parallel (0 = one per CPU)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob of paths to skip, relative to the working directory")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "descend into symlinked directories")

	return cmd
}

// checkFile scans and parses one file. The counts are filled in as far as
// the check got.
func checkFile(ctx context.Context, path string) (pretty.CheckResult, error) {
	var result pretty.CheckResult

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return result, err
	}
	source := string(content)

	tokens := scanner.Scan(source)
	result.Tokens = len(tokens)
	if !mdast.ValidateTokens(tokens, source) {
		return result, errTokensLossy
	}

	doc, err := parser.ParseTokens(tokens)
	if err != nil {
		return result, err
	}
	if doc.String() != source {
		return result, errTreeLossy
	}

	_ = mdast.Walk(doc, func(mdast.Statement) error {
		result.Statements++
		return nil
	})

	counts, err := newOutline(doc)
	if err != nil {
		return result, err
	}
	logging.FromContext(ctx).Debug("checked file",
		append([]any{logging.FieldPath, path, logging.FieldTokens, result.Tokens}, counts.fields()...)...)
	return result, nil
}
