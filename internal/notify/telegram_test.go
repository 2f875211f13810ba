package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wasim-s-creator/sdlc-demo/internal/config"
)

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "summary_main_0123456.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return path
}

func TestSendDocument(t *testing.T) {
	var gotPath, gotChatID, gotCaption, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotChatID = r.FormValue("chat_id")
		gotCaption = r.FormValue("caption")
		if _, header, err := r.FormFile("document"); err == nil {
			gotFilename = header.Filename
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tg := NewTelegram(config.TelegramConfig{
		Token:   "123:abc",
		ChatID:  "-4908",
		APIBase: server.URL,
	})
	doc := writeDoc(t)
	if err := tg.SendDocument(context.Background(), doc, Caption("main", "0123456")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotPath != "/bot123:abc/sendDocument" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotChatID != "-4908" {
		t.Fatalf("unexpected chat id: %q", gotChatID)
	}
	if gotCaption != "Auto summary — main @ 0123456" {
		t.Fatalf("unexpected caption: %q", gotCaption)
	}
	if gotFilename != filepath.Base(doc) {
		t.Fatalf("unexpected filename: %q", gotFilename)
	}
}

func TestSendDocumentNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"description":"bot was blocked"}`))
	}))
	defer server.Close()

	tg := NewTelegram(config.TelegramConfig{Token: "t", ChatID: "c", APIBase: server.URL})
	err := tg.SendDocument(context.Background(), writeDoc(t), "caption")
	if err == nil {
		t.Fatalf("expected error for 403")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "blocked") {
		t.Fatalf("error should carry status and body: %v", err)
	}
}

func TestSendDocumentMissingFile(t *testing.T) {
	tg := NewTelegram(config.TelegramConfig{Token: "t", ChatID: "c", APIBase: "http://unused"})
	if err := tg.SendDocument(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), "caption"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfigured(t *testing.T) {
	if NewTelegram(config.TelegramConfig{}).Configured() {
		t.Fatalf("empty config should not be configured")
	}
	if !NewTelegram(config.TelegramConfig{Token: "t", ChatID: "c"}).Configured() {
		t.Fatalf("token+chat id should be configured")
	}
}
