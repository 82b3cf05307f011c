package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/pkg/block"
	"github.com/yaklabco/mdcst/pkg/langdetect"
	"github.com/yaklabco/mdcst/pkg/span"
)

func newCodeCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Edit fenced code blocks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "lang FILE",
		Aliases: []string{"language"},
		Short:   "Tag untagged code fences with a language",
		Long: `Give every code fence without a language tag one. The language is detected
from the block source when code.detect is on, and code.fallback is used
when detection is off or finds nothing.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			logger := logging.FromContext(cmd.Context())
			untagged := span.CodeBlocks(d.doc.Statement()).FindAll(
				span.Func(func(cb *block.CodeBlockBlock) bool { return cb.Language() == "" }),
			)
			for _, cb := range untagged {
				lang := app.cfg.Code.Fallback
				if app.cfg.DetectLanguage() {
					lang = langdetect.DetectOr([]byte(cb.Source()), lang)
				}
				if lang == "" {
					continue
				}
				if err := cb.SetLanguage(lang); err != nil {
					return err
				}
				logger.Debug("tagged code block", logging.FieldLanguage, lang)
			}
			return app.commit(cmd, d)
		},
	})

	return cmd
}
