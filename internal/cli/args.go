package cli

import (
	"github.com/spf13/cobra"
)

// usageArgs wraps a positional argument validator so its failures map to
// ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageErrorf("%w", err)
		}
		return nil
	}
}
