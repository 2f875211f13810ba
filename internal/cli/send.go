package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wasim-s-creator/sdlc-demo/internal/notify"
)

// NewSendCmd delivers the generated PDF to the configured chat. Every
// failure path warns and exits zero: delivery must never block CI.
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the generated summary document to Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			cfg := app.Config

			if !app.Telegram.Configured() {
				fmt.Fprintln(cmd.ErrOrStderr(), "[WARN] telegram is not configured; skipping delivery")
				return nil
			}

			_, pdfPath := summaryPaths(cfg)
			if _, err := os.Stat(pdfPath); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] document not found: %s\n", pdfPath)
				return nil
			}

			caption := notify.Caption(cfg.Branch, cfg.ShortSHA)
			if err := app.Telegram.SendDocument(cmd.Context(), pdfPath, caption); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "[ERROR] failed to send document: %v\n", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[INFO] document sent to chat %s\n", cfg.Telegram.ChatID)
			return nil
		},
	}
	return cmd
}
