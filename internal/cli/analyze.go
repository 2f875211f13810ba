package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wasim-s-creator/sdlc-demo/internal/lint"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the configured linters and write the analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			cfg := app.Config

			sections := lint.Analyze(cmd.Context(), app.Lint, cfg.Linters)
			markdown := lint.BuildMarkdown(cfg.Branch, cfg.ShortSHA, sections)

			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
			path := analysisPath(cfg)
			if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
				return fmt.Errorf("failed to write analysis: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote analysis: %s\n", path)
			return nil
		},
	}
	return cmd
}
