package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/pkg/scanner"
	"github.com/yaklabco/mdcst/pkg/span"
)

// ErrNoFrontmatter is returned when reading frontmatter from a document
// without a frontmatter block.
var ErrNoFrontmatter = errors.New("no frontmatter")

func newFrontmatterCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "frontmatter",
		Aliases: []string{"fm"},
		Short:   "Read and edit the YAML frontmatter of a file",
	}

	cmd.AddCommand(newFrontmatterGetCommand(app))
	cmd.AddCommand(newFrontmatterSetCommand(app))
	cmd.AddCommand(newFrontmatterRemoveCommand(app))

	return cmd
}

func newFrontmatterGetCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE [KEY]",
		Short: "Print one frontmatter value, or all of them as YAML",
		Args:  usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fm, ok := d.doc.Frontmatter()
			if !ok {
				return fmt.Errorf("%s: %w", d.path, ErrNoFrontmatter)
			}

			if len(args) == 1 {
				out, err := yaml.Marshal(fm.ToMap())
				if err != nil {
					return fmt.Errorf("encode frontmatter: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			item, ok := span.FrontmatterItems(d.doc).Find(span.Key(args[1]))
			if !ok {
				return fmt.Errorf("%s: %w: %s", d.path, ErrKeyNotFound, args[1])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatValue(item.Value()))
			return err
		},
	}
}

func newFrontmatterSetCommand(app *app) *cobra.Command {
	var asList bool

	cmd := &cobra.Command{
		Use:   "set FILE KEY VALUE...",
		Short: "Set a frontmatter key, creating the frontmatter if needed",
		Long: `Set KEY to VALUE. A single value is decoded like a YAML scalar, so "true"
and "3" become a boolean and a number. Several values, or --list, set a list.`,
		Args: usageArgs(cobra.MinimumNArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			key, values := args[1], args[2:]
			var value any
			if asList || len(values) > 1 {
				value = values
			} else {
				value = scanner.DecodeValue(values[0])
			}

			if err := d.doc.EnsureFrontmatter().Set(key, value); err != nil {
				return usageErrorf("set %s: %w", key, err)
			}
			logging.FromContext(cmd.Context()).Debug("set frontmatter",
				logging.FieldKey, key,
				logging.FieldValue, value,
			)
			return app.commit(cmd, d)
		},
	}

	cmd.Flags().BoolVarP(&asList, "list", "l", false, "store a single value as a one-item list")

	return cmd
}

func newFrontmatterRemoveCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm FILE KEY",
		Aliases: []string{"remove"},
		Short:   "Remove a frontmatter key",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			removed, err := span.FrontmatterItems(d.doc).Remove(span.Key(args[1]))
			if err != nil {
				return err
			}
			if removed == 0 {
				return fmt.Errorf("%s: %w: %s", d.path, ErrKeyNotFound, args[1])
			}
			logging.FromContext(cmd.Context()).Debug("removed frontmatter key",
				logging.FieldKey, args[1],
				logging.FieldRemoved, removed,
			)
			return app.commit(cmd, d)
		},
	}
}

// formatValue renders a decoded frontmatter value for the terminal. Lists
// print one item per line.
func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []string:
		return strings.Join(value, "\n")
	default:
		return fmt.Sprint(value)
	}
}
