package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func NewHistoryCmd() *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded summary runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := app.Store.ListRuns(limit)
			if err != nil {
				return err
			}
			if jsonOut {
				payload := map[string]any{"runs": runs}
				data, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s @ %s\n", run.ID, run.Branch, run.ShortSHA)
				fmt.Fprintf(cmd.OutOrStdout(), "  Created: %s  Findings: %d  Recommendations: %d\n",
					run.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), run.FindingCount, run.RecommendationCount)
				fmt.Fprintf(cmd.OutOrStdout(), "  Report: %s\n", run.ReportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max runs to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}
