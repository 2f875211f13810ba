// Package notify delivers a generated document to the Telegram bot API.
// Delivery is strictly best-effort: callers log a failed send and move on,
// never retry, never fail the run.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/wasim-s-creator/sdlc-demo/internal/config"
)

type Telegram struct {
	apiBase string
	token   string
	chatID  string
	client  *http.Client
}

func NewTelegram(cfg config.TelegramConfig) *Telegram {
	return &Telegram{
		apiBase: cfg.APIBase,
		token:   cfg.Token,
		chatID:  cfg.ChatID,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (t *Telegram) Configured() bool {
	return t.token != "" && t.chatID != ""
}

// SendDocument posts the file as a multipart upload with the given caption.
// A non-2xx response is an error carrying the response body so the caller
// can log it.
func (t *Telegram) SendDocument(ctx context.Context, path string, caption string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer func() { _ = file.Close() }()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", t.chatID); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	part, err := writer.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendDocument", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}

// Caption renders the fixed delivery caption.
func Caption(branch, shortSHA string) string {
	return fmt.Sprintf("Auto summary — %s @ %s", branch, shortSHA)
}
