package gitx

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/wasim-s-creator/sdlc-demo/internal/config"
)

// ChangeRange identifies the two points being compared. Head is always the
// current checkout; Base degrades from the configured branch to the parent
// commit to Head itself on a single-commit history.
type ChangeRange struct {
	Base string
	Head string
}

func (r ChangeRange) Empty() bool {
	return r.Base == r.Head
}

// Collection is everything the downstream heuristics consume. It is built
// once per run and never mutated. Notes carry the reason for every step that
// degraded instead of failing; the report renders them so a shallow clone is
// distinguishable from a genuinely empty diff.
type Collection struct {
	Range ChangeRange
	Stat  string
	Patch string
	Files []string
	Notes []string
}

type Client struct {
	Runner Runner
}

func NewClient(runner Runner) *Client {
	return &Client{Runner: runner}
}

func (c *Client) CheckInstalled() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git not found in PATH")
	}
	return nil
}

// EnsureHistory deepens a shallow checkout enough to diff against the base
// branch. Fetch failures are swallowed; the resolver just ends up with a
// shallower range.
func (c *Client) EnsureHistory(ctx context.Context, baseBranch string) []string {
	var notes []string
	if _, err := c.Runner.Run(ctx, "fetch", "--no-tags", "--prune", "--depth=2", "origin"); err != nil {
		notes = append(notes, fmt.Sprintf("history fetch failed: %v", err))
	}
	tail := baseBranch
	if idx := strings.LastIndex(baseBranch, "/"); idx >= 0 {
		tail = baseBranch[idx+1:]
	}
	if tail != "" {
		if _, err := c.Runner.Run(ctx, "fetch", "origin", tail, "--depth=1"); err != nil {
			notes = append(notes, fmt.Sprintf("base branch fetch failed: %v", err))
		}
	}
	return notes
}

// Resolve picks the comparison range: the configured base branch when it
// resolves locally, otherwise the parent commit, otherwise HEAD against
// itself (first commit).
func (c *Client) Resolve(ctx context.Context, baseBranch string) (ChangeRange, []string) {
	var notes []string
	if c.refExists(ctx, baseBranch) {
		return ChangeRange{Base: baseBranch, Head: "HEAD"}, notes
	}
	notes = append(notes, fmt.Sprintf("base %s not resolvable locally; comparing against parent commit", baseBranch))
	if c.refExists(ctx, "HEAD~1") {
		return ChangeRange{Base: "HEAD~1", Head: "HEAD"}, notes
	}
	notes = append(notes, "no parent commit; treating checkout as first commit")
	return ChangeRange{Base: "HEAD", Head: "HEAD"}, notes
}

func (c *Client) refExists(ctx context.Context, ref string) bool {
	_, err := c.Runner.Run(ctx, "rev-parse", "--verify", "--quiet", ref)
	return err == nil
}

// Collect obtains the stat summary and unified patch for the range. It never
// returns an error: failures and fallbacks are recorded as notes, and an
// empty result means "no changes".
func (c *Client) Collect(ctx context.Context, rng ChangeRange, contextLines int, fallback string) Collection {
	col := Collection{Range: rng}

	stat, err := c.Runner.Run(ctx, "diff", "--stat", rng.Base, rng.Head)
	if err != nil {
		col.Notes = append(col.Notes, fmt.Sprintf("diff stat failed: %v", err))
		stat = ""
	}
	unified := fmt.Sprintf("--unified=%d", contextLines)
	patch, err := c.Runner.Run(ctx, "diff", unified, rng.Base, rng.Head)
	if err != nil {
		col.Notes = append(col.Notes, fmt.Sprintf("diff patch failed: %v", err))
		patch = ""
	}

	if strings.TrimSpace(stat) == "" {
		switch fallback {
		case config.FallbackNone:
			col.Notes = append(col.Notes, "primary range produced no changes; fallback disabled")
		default:
			col.Notes = append(col.Notes, "primary range produced no changes; showing last commit against its parent")
			stat, patch = c.showLastCommit(ctx, unified, &col)
		}
	}

	col.Stat = strings.TrimSpace(stat)
	col.Patch = patch
	col.Files = ParseStatFiles(col.Stat)
	return col
}

func (c *Client) showLastCommit(ctx context.Context, unified string, col *Collection) (string, string) {
	stat, err := c.Runner.Run(ctx, "show", "--stat", "--pretty=", "HEAD")
	if err != nil {
		col.Notes = append(col.Notes, fmt.Sprintf("show stat failed: %v", err))
		stat = ""
	}
	patch, err := c.Runner.Run(ctx, "show", unified, "--pretty=", "HEAD")
	if err != nil {
		col.Notes = append(col.Notes, fmt.Sprintf("show patch failed: %v", err))
		patch = ""
	}
	return stat, patch
}

// LastCommitMessage returns the full message of the latest commit, or an
// empty string plus a note when git fails.
func (c *Client) LastCommitMessage(ctx context.Context) (string, []string) {
	output, err := c.Runner.Run(ctx, "log", "-1", "--pretty=%B")
	if err != nil {
		return "", []string{fmt.Sprintf("commit message lookup failed: %v", err)}
	}
	return strings.TrimSpace(output), nil
}

var statSummaryRe = regexp.MustCompile(`^\d+ file(s)? changed`)

// ParseStatFiles extracts the changed file paths from `git diff --stat`
// output. The trailing "N files changed, ..." summary line is excluded.
func ParseStatFiles(stat string) []string {
	var files []string
	for _, line := range strings.Split(stat, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if statSummaryRe.MatchString(line) {
			continue
		}
		path, _, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		path = strings.TrimSpace(path)
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}
