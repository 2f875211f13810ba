package gitx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

type RealRunner struct {
	Dir string
}

func (r RealRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return string(output), nil
}

// FixtureRunner serves canned git output from a fixture directory. Tests
// switch it on with SDLC_MOCK=1.
type FixtureRunner struct {
	Root string
}

func NewFixtureRunner(root string) FixtureRunner {
	return FixtureRunner{Root: root}
}

func (f FixtureRunner) Run(ctx context.Context, args ...string) (string, error) {
	_ = ctx
	key := strings.Join(args, " ")
	var file string
	switch {
	case strings.HasPrefix(key, "fetch"):
		return "", nil
	case strings.HasPrefix(key, "rev-parse"):
		file = "rev_parse.txt"
	case strings.HasPrefix(key, "diff --stat"):
		file = "diff_stat.txt"
	case strings.HasPrefix(key, "diff --unified"):
		file = "diff_patch.txt"
	case strings.HasPrefix(key, "show --stat"):
		file = "show_stat.txt"
	case strings.HasPrefix(key, "show --unified"):
		file = "show_patch.txt"
	case strings.HasPrefix(key, "log -1"):
		file = "commit_msg.txt"
	default:
		return "", fmt.Errorf("no fixture for git args: %s", key)
	}
	data, err := os.ReadFile(filepath.Join(f.Root, file))
	if err != nil {
		return "", fmt.Errorf("fixture unavailable: %w", err)
	}
	return string(data), nil
}
