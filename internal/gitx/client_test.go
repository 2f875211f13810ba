package gitx

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/wasim-s-creator/sdlc-demo/internal/config"
)

// scriptedRunner answers by longest matching arg prefix and fails for
// anything unscripted.
type scriptedRunner struct {
	responses map[string]string
	failures  map[string]bool
	calls     []string
}

func (s *scriptedRunner) Run(ctx context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	s.calls = append(s.calls, key)
	for prefix := range s.failures {
		if strings.HasPrefix(key, prefix) {
			return "", fmt.Errorf("scripted failure for %s", key)
		}
	}
	for prefix, output := range s.responses {
		if strings.HasPrefix(key, prefix) {
			return output, nil
		}
	}
	return "", fmt.Errorf("unscripted git call: %s", key)
}

const sampleStat = " a.py | 3 ++-\n 1 file changed, 3 insertions(+)"

const samplePatch = `diff --git a/a.py b/a.py
--- a/a.py
+++ b/a.py
@@ -1,1 +1,3 @@
+def foo(x):
`

func TestParseStatFiles(t *testing.T) {
	files := ParseStatFiles("a.py | 3 ++-\n1 file changed, 3 insertions(+)")
	if len(files) != 1 || files[0] != "a.py" {
		t.Fatalf("unexpected files: %#v", files)
	}
}

func TestParseStatFilesPluralSummary(t *testing.T) {
	stat := "src/app.py | 10 ++++\ntests/test_app.py | 4 ++\n2 files changed, 14 insertions(+)"
	files := ParseStatFiles(stat)
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %#v", files)
	}
	if files[0] != "src/app.py" || files[1] != "tests/test_app.py" {
		t.Fatalf("unexpected files: %#v", files)
	}
}

func TestParseStatFilesEmpty(t *testing.T) {
	if files := ParseStatFiles(""); len(files) != 0 {
		t.Fatalf("expected no files, got %#v", files)
	}
}

func TestResolvePrefersBaseBranch(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"rev-parse --verify --quiet origin/main": "abc123\n",
	}}
	client := NewClient(runner)
	rng, notes := client.Resolve(context.Background(), "origin/main")
	if rng.Base != "origin/main" || rng.Head != "HEAD" {
		t.Fatalf("unexpected range: %#v", rng)
	}
	if len(notes) != 0 {
		t.Fatalf("unexpected notes: %#v", notes)
	}
}

func TestResolveFallsBackToParent(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"rev-parse --verify --quiet HEAD~1": "abc123\n",
	}}
	client := NewClient(runner)
	rng, notes := client.Resolve(context.Background(), "origin/main")
	if rng.Base != "HEAD~1" || rng.Head != "HEAD" {
		t.Fatalf("unexpected range: %#v", rng)
	}
	if len(notes) != 1 {
		t.Fatalf("expected a degradation note, got %#v", notes)
	}
}

func TestResolveFirstCommit(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{}}
	client := NewClient(runner)
	rng, notes := client.Resolve(context.Background(), "origin/main")
	if !rng.Empty() {
		t.Fatalf("expected self-range, got %#v", rng)
	}
	if len(notes) != 2 {
		t.Fatalf("expected two notes, got %#v", notes)
	}
}

func TestCollectPrimaryRange(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"diff --stat":    sampleStat,
		"diff --unified": samplePatch,
	}}
	client := NewClient(runner)
	col := client.Collect(context.Background(), ChangeRange{Base: "HEAD~1", Head: "HEAD"}, 3, config.FallbackLastCommit)
	if col.Stat == "" || col.Patch == "" {
		t.Fatalf("expected stat and patch, got %#v", col)
	}
	if len(col.Files) != 1 || col.Files[0] != "a.py" {
		t.Fatalf("unexpected files: %#v", col.Files)
	}
	if len(col.Notes) != 0 {
		t.Fatalf("unexpected notes: %#v", col.Notes)
	}
}

func TestCollectFallsBackToShow(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"diff --stat":    "",
		"diff --unified": "",
		"show --stat":    sampleStat,
		"show --unified": samplePatch,
	}}
	client := NewClient(runner)
	col := client.Collect(context.Background(), ChangeRange{Base: "HEAD~1", Head: "HEAD"}, 3, config.FallbackLastCommit)
	if col.Stat == "" {
		t.Fatalf("expected fallback stat")
	}
	if len(col.Notes) != 1 {
		t.Fatalf("expected one fallback note, got %#v", col.Notes)
	}
}

func TestCollectFallbackDisabled(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"diff --stat":    "",
		"diff --unified": "",
	}}
	client := NewClient(runner)
	col := client.Collect(context.Background(), ChangeRange{Base: "HEAD", Head: "HEAD"}, 3, config.FallbackNone)
	if col.Stat != "" || col.Patch != "" || len(col.Files) != 0 {
		t.Fatalf("expected empty collection, got %#v", col)
	}
	for _, call := range runner.calls {
		if strings.HasPrefix(call, "show") {
			t.Fatalf("fallback disabled but show was invoked: %#v", runner.calls)
		}
	}
}

func TestCollectNeverErrors(t *testing.T) {
	runner := &scriptedRunner{
		responses: map[string]string{},
		failures:  map[string]bool{"diff": true, "show": true},
	}
	client := NewClient(runner)
	col := client.Collect(context.Background(), ChangeRange{Base: "HEAD~1", Head: "HEAD"}, 3, config.FallbackLastCommit)
	if col.Stat != "" || col.Patch != "" {
		t.Fatalf("expected empty output on total failure, got %#v", col)
	}
	if len(col.Notes) == 0 {
		t.Fatalf("expected degradation notes")
	}
}

func TestLastCommitMessage(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"log -1": "feat(auth): add token refresh\n\nlonger body\n",
	}}
	client := NewClient(runner)
	msg, notes := client.LastCommitMessage(context.Background())
	if !strings.HasPrefix(msg, "feat(auth)") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if len(notes) != 0 {
		t.Fatalf("unexpected notes: %#v", notes)
	}

	failing := NewClient(&scriptedRunner{failures: map[string]bool{"log": true}})
	msg, notes = failing.LastCommitMessage(context.Background())
	if msg != "" || len(notes) != 1 {
		t.Fatalf("expected empty message with note, got %q %#v", msg, notes)
	}
}

func TestEnsureHistorySwallowsFailures(t *testing.T) {
	runner := &scriptedRunner{failures: map[string]bool{"fetch": true}}
	client := NewClient(runner)
	notes := client.EnsureHistory(context.Background(), "origin/main")
	if len(notes) != 2 {
		t.Fatalf("expected two notes, got %#v", notes)
	}
}
