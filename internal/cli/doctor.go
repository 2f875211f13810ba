package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wasim-s-creator/sdlc-demo/internal/report"
)

func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check dependencies and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sdlc doctor")

			if err := app.Git.CheckInstalled(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- git: ok")

			if err := checkOutputDir(app.Config.OutputDir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- output dir: ok")

			sample, err := report.Report{}.JSON()
			if err != nil {
				return err
			}
			if err := report.ValidateJSON(report.DefaultSchemaPath(), sample); err != nil {
				fmt.Fprintf(cmd.OutOrStderr(), "- report schema: failed\n%v\n", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- report schema: ok")

			if app.Telegram.Configured() {
				fmt.Fprintln(cmd.OutOrStdout(), "- telegram: configured")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "- telegram: not configured (delivery will be skipped)")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "doctor checks passed")
			return nil
		},
	}
	return cmd
}

func checkOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output dir is not writable: %w", err)
	}
	probe := filepath.Join(dir, ".doctor_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("output dir is not writable: %w", err)
	}
	return os.Remove(probe)
}
