package lint

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type Runner interface {
	Run(ctx context.Context, command string, args ...string) (string, error)
}

// RealRunner executes the linter and hands back whatever it printed. A
// non-zero exit is how linters report findings, so it is not an error here;
// only a missing executable surfaces as one.
type RealRunner struct {
	Dir string
}

func (r RealRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	if _, err := exec.LookPath(command); err != nil {
		return "", fmt.Errorf("%s not found in PATH", command)
	}
	cmd := exec.CommandContext(ctx, command, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	output, _ := cmd.CombinedOutput()
	return string(output), nil
}

// FixtureRunner serves canned linter output from <root>/<command>.txt.
type FixtureRunner struct {
	Root string
}

func NewFixtureRunner(root string) FixtureRunner {
	return FixtureRunner{Root: root}
}

func (f FixtureRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	_ = ctx
	data, err := os.ReadFile(filepath.Join(f.Root, command+".txt"))
	if err != nil {
		return "", fmt.Errorf("no fixture for %s: %w", command, err)
	}
	return string(data), nil
}
