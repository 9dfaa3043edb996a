// Package root wires the arena CLI.
package root

import "github.com/spf13/cobra"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arena",
		Short:         "Run sandboxed agent-program matches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewRunCmd())

	return cmd
}
