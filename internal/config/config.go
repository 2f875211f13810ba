package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fallback modes for an empty primary diff range.
const (
	FallbackLastCommit = "last-commit"
	FallbackNone       = "none"
)

type Config struct {
	BaseBranch     string         `mapstructure:"base_branch"`
	Branch         string         `mapstructure:"branch"`
	ShortSHA       string         `mapstructure:"short_sha"`
	OutputDir      string         `mapstructure:"output_dir"`
	DiffContext    int            `mapstructure:"diff_context"`
	LargeFileBytes int64          `mapstructure:"large_file_bytes"`
	TodoLimit      int            `mapstructure:"todo_limit"`
	Fallback       string         `mapstructure:"fallback"`
	Linters        []LinterSpec   `mapstructure:"linters"`
	Telegram       TelegramConfig `mapstructure:"telegram"`
	TUI            TUIConfig      `mapstructure:"tui"`
}

type LinterSpec struct {
	Name    string   `mapstructure:"name"`
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

type TelegramConfig struct {
	Token   string `mapstructure:"token"`
	ChatID  string `mapstructure:"chat_id"`
	APIBase string `mapstructure:"api_base"`
}

type TUIConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func Defaults() Config {
	return Config{
		BaseBranch:     "origin/main",
		Branch:         "unknown-branch",
		ShortSHA:       "unknown",
		OutputDir:      "outputs",
		DiffContext:    3,
		LargeFileBytes: 512000,
		TodoLimit:      20,
		Fallback:       FallbackLastCommit,
		Linters:        DefaultLinters(),
		Telegram: TelegramConfig{
			APIBase: "https://api.telegram.org",
		},
		TUI: TUIConfig{Enabled: true},
	}
}

func DefaultLinters() []LinterSpec {
	return []LinterSpec{
		{Name: "Flake8 Linting", Command: "flake8", Args: []string{"."}},
		{Name: "Pylint Report", Command: "pylint", Args: []string{"--recursive=y", "."}},
		{Name: "Type Checking (mypy)", Command: "mypy", Args: []string{"."}},
		{Name: "Formatting suggestions", Command: "black", Args: []string{"--check", "."}},
		{Name: "Import sorting check", Command: "isort", Args: []string{"--check-only", "."}},
	}
}

// Load builds the effective configuration from the optional yaml file and the
// environment the CI workflow provides. Components receive the result by value
// and never read the environment themselves.
func Load(configPath string) (Config, error) {
	cfg := Defaults()

	if err := loadFile(configPath, &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)

	if cfg.BaseBranch == "" {
		cfg.BaseBranch = "origin/main"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "outputs"
	}
	if cfg.DiffContext <= 0 {
		cfg.DiffContext = 3
	}
	if cfg.LargeFileBytes <= 0 {
		cfg.LargeFileBytes = 512000
	}
	if cfg.TodoLimit <= 0 {
		cfg.TodoLimit = 20
	}
	if cfg.Telegram.APIBase == "" {
		cfg.Telegram.APIBase = "https://api.telegram.org"
	}
	switch cfg.Fallback {
	case FallbackLastCommit, FallbackNone:
	case "":
		cfg.Fallback = FallbackLastCommit
	default:
		return Config{}, fmt.Errorf("invalid fallback mode: %q", cfg.Fallback)
	}

	return cfg, nil
}

func loadFile(configPath string, cfg *Config) error {
	path := configPath
	if path == "" {
		path = filepath.Join(".", "sdlc.yaml")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && configPath == "" {
			return nil
		}
		if os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if value := os.Getenv("BASE_BRANCH"); value != "" {
		cfg.BaseBranch = value
	}
	if value := os.Getenv("BRANCH_NAME"); value != "" {
		cfg.Branch = value
	} else if ref := os.Getenv("GITHUB_REF"); ref != "" {
		branch := strings.TrimPrefix(ref, "refs/heads/")
		if branch != "" {
			cfg.Branch = branch
		}
	}
	if value := os.Getenv("SHORT_SHA"); value != "" {
		cfg.ShortSHA = value
	} else if sha := os.Getenv("GITHUB_SHA"); sha != "" {
		if len(sha) > 7 {
			sha = sha[:7]
		}
		cfg.ShortSHA = sha
	}
	if value := os.Getenv("SDLC_OUTPUT_DIR"); value != "" {
		cfg.OutputDir = value
	}
	if value := os.Getenv("SDLC_FALLBACK"); value != "" {
		cfg.Fallback = value
	}
	if value := os.Getenv("TELEGRAM_BOT_TOKEN"); value != "" {
		cfg.Telegram.Token = value
	}
	if value := os.Getenv("TELEGRAM_CHAT_ID"); value != "" {
		cfg.Telegram.ChatID = value
	}
	if value := os.Getenv("TELEGRAM_API_BASE"); value != "" {
		cfg.Telegram.APIBase = value
	}
}

// Now returns the report clock. SDLC_NOW pins it so repeated runs over the
// same diff produce byte-identical reports.
func Now() time.Time {
	if value := os.Getenv("SDLC_NOW"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err == nil {
			return parsed
		}
	}
	return time.Now().UTC()
}
