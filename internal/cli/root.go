package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "sdlc",
		Short:         "CI change summary and review helper",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(context.Background(), app))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Override config path")

	root.AddCommand(NewSummarizeCmd())
	root.AddCommand(NewAnalyzeCmd())
	root.AddCommand(NewSendCmd())
	root.AddCommand(NewRunCmd())
	root.AddCommand(NewHistoryCmd())
	root.AddCommand(NewViewCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewDoctorCmd())

	return root
}
