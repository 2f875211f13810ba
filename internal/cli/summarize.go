package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewSummarizeCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Build the change summary report for the current checkout",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			result, err := runSummarize(cmd, app)
			if err != nil {
				return err
			}
			if jsonOut {
				data, err := result.Report.JSON()
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(append(data, '\n')); err != nil {
					return err
				}
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote summary: %s\n", result.MarkdownPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote PDF   : %s\n", result.PDFPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report payload as JSON")
	return cmd
}
