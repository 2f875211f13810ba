package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BASE_BRANCH", "BRANCH_NAME", "GITHUB_REF", "SHORT_SHA", "GITHUB_SHA",
		"SDLC_OUTPUT_DIR", "SDLC_FALLBACK", "SDLC_NOW",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "TELEGRAM_API_BASE",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for explicit missing config path")
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseBranch != "origin/main" {
		t.Fatalf("unexpected base branch: %q", cfg.BaseBranch)
	}
	if cfg.Branch != "unknown-branch" || cfg.ShortSHA != "unknown" {
		t.Fatalf("unexpected identity defaults: %q %q", cfg.Branch, cfg.ShortSHA)
	}
	if cfg.LargeFileBytes != 512000 {
		t.Fatalf("unexpected large file threshold: %d", cfg.LargeFileBytes)
	}
	if cfg.Fallback != FallbackLastCommit {
		t.Fatalf("unexpected fallback: %q", cfg.Fallback)
	}
	if len(cfg.Linters) != 5 {
		t.Fatalf("expected 5 default linters, got %d", len(cfg.Linters))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_BRANCH", "origin/develop")
	t.Setenv("GITHUB_REF", "refs/heads/feature-x")
	t.Setenv("GITHUB_SHA", "0123456789abcdef")
	t.Setenv("SDLC_OUTPUT_DIR", "artifacts")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseBranch != "origin/develop" {
		t.Fatalf("unexpected base branch: %q", cfg.BaseBranch)
	}
	if cfg.Branch != "feature-x" {
		t.Fatalf("unexpected branch: %q", cfg.Branch)
	}
	if cfg.ShortSHA != "0123456" {
		t.Fatalf("unexpected short sha: %q", cfg.ShortSHA)
	}
	if cfg.OutputDir != "artifacts" {
		t.Fatalf("unexpected output dir: %q", cfg.OutputDir)
	}
}

func TestBranchNameBeatsGithubRef(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRANCH_NAME", "release")
	t.Setenv("GITHUB_REF", "refs/heads/other")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Branch != "release" {
		t.Fatalf("unexpected branch: %q", cfg.Branch)
	}
}

func TestInvalidFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("SDLC_FALLBACK", "sometimes")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid fallback mode")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sdlc.yaml")
	content := "base_branch: origin/trunk\ntodo_limit: 5\ntelegram:\n  chat_id: \"-100\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseBranch != "origin/trunk" {
		t.Fatalf("unexpected base branch: %q", cfg.BaseBranch)
	}
	if cfg.TodoLimit != 5 {
		t.Fatalf("unexpected todo limit: %d", cfg.TodoLimit)
	}
	if cfg.Telegram.ChatID != "-100" {
		t.Fatalf("unexpected chat id: %q", cfg.Telegram.ChatID)
	}
}

func TestNowPinned(t *testing.T) {
	clearEnv(t)
	t.Setenv("SDLC_NOW", "2026-02-04T00:00:00Z")
	got := Now()
	want := time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected pinned time: %v", got)
	}
}
