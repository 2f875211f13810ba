package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wasim-s-creator/sdlc-demo/internal/report"
	"github.com/wasim-s-creator/sdlc-demo/internal/store"
)

func NewViewCmd() *cobra.Command {
	var runID int64
	var plain bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the findings of a recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}

			var run store.Run
			if runID > 0 {
				run, err = app.Store.GetRun(runID)
			} else {
				run, err = app.Store.LatestRun()
			}
			if err == sql.ErrNoRows {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			if err != nil {
				return err
			}

			var payload report.Payload
			if err := json.Unmarshal([]byte(run.FindingsJSON), &payload); err != nil {
				return fmt.Errorf("failed to decode run payload: %w", err)
			}

			if plain || !app.Config.TUI.Enabled {
				return printFindings(cmd, run, payload)
			}
			return runViewTUI(run, payload)
		},
	}

	cmd.Flags().Int64Var(&runID, "run", 0, "Run id (default: latest)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print findings without the TUI")
	return cmd
}

func printFindings(cmd *cobra.Command, run store.Run, payload report.Payload) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Run #%d — %s @ %s\n", run.ID, run.Branch, run.ShortSHA)
	if len(payload.Findings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No findings.")
		return nil
	}
	for _, f := range payload.Findings {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", findingTitle(f))
	}
	return nil
}
