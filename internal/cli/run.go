package cli

import (
	"github.com/spf13/cobra"
)

// NewRunCmd is the CI entrypoint: summarize the checkout, then deliver the
// document.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Summarize and deliver in one invocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runSubcommand(cmd, NewSummarizeCmd()); err != nil {
				return err
			}
			return runSubcommand(cmd, NewSendCmd())
		},
	}
	return cmd
}

func runSubcommand(parent *cobra.Command, sub *cobra.Command, args ...string) error {
	sub.SetContext(parent.Context())
	sub.SetOut(parent.OutOrStdout())
	sub.SetErr(parent.ErrOrStderr())
	sub.SetArgs(args)
	return sub.Execute()
}
