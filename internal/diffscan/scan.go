package diffscan

import (
	"os"
	"strings"

	"github.com/wasim-s-creator/sdlc-demo/internal/redact"
)

var secretTerms = []string{"password", "secret", "api_key", "token"}

var sourceExts = map[string]bool{
	".py": true, ".go": true, ".js": true, ".ts": true, ".jsx": true,
	".tsx": true, ".java": true, ".rb": true, ".rs": true, ".c": true,
	".cc": true, ".cpp": true,
}

// Sizer reports the on-disk size of a changed path. The second return is
// false for paths that no longer exist (deleted files), which are skipped
// without error.
type Sizer func(path string) (int64, bool)

func statSizer(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// Scanner applies every line classifier to each diff line, then the
// whole-diff and file-level checks. Finding order is first appearance in
// the diff, with file-level findings appended after.
type Scanner struct {
	Classifiers    []LineClassifier
	LargeFileBytes int64
	Sizer          Sizer
}

func NewScanner(largeFileBytes int64) *Scanner {
	return &Scanner{
		Classifiers:    defaultClassifiers(),
		LargeFileBytes: largeFileBytes,
		Sizer:          statSizer,
	}
}

func (s *Scanner) Scan(patch string, changedFiles []string) []Finding {
	var findings []Finding

	currentFile := ""
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "+++ b/") {
			currentFile = strings.TrimSpace(strings.TrimPrefix(line, "+++ b/"))
			continue
		}
		for _, classifier := range s.Classifiers {
			findings = append(findings, classifier.Classify(line, currentFile)...)
		}
	}

	findings = dedupeFunctions(findings)

	for _, path := range changedFiles {
		size, exists := s.Sizer(path)
		if !exists {
			continue
		}
		if size > s.LargeFileBytes {
			findings = append(findings, Finding{Kind: KindLargeFile, Path: path, Size: size})
		}
	}

	if snippet, found := detectSecret(patch); found {
		findings = append(findings, Finding{Kind: KindPossibleSecret, Text: snippet})
	}

	if missingTests(changedFiles) {
		findings = append(findings, Finding{Kind: KindMissingTests})
	}

	return findings
}

// dedupeFunctions keeps the first FunctionAdded and FunctionRemoved per
// name; a function touched several times in one diff is reported once per
// direction. Other kinds pass through untouched.
func dedupeFunctions(findings []Finding) []Finding {
	seenAdded := map[string]bool{}
	seenRemoved := map[string]bool{}
	out := findings[:0]
	for _, f := range findings {
		switch f.Kind {
		case KindFunctionAdded:
			if seenAdded[f.Name] {
				continue
			}
			seenAdded[f.Name] = true
		case KindFunctionRemoved:
			if seenRemoved[f.Name] {
				continue
			}
			seenRemoved[f.Name] = true
		}
		out = append(out, f)
	}
	return out
}

// detectSecret reports at most one possible-secret finding per diff. The
// snippet is the first matching line, redacted before it is carried any
// further.
func detectSecret(patch string) (string, bool) {
	lower := strings.ToLower(patch)
	matched := false
	for _, term := range secretTerms {
		if strings.Contains(lower, term) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}
	for _, line := range strings.Split(patch, "\n") {
		lowerLine := strings.ToLower(line)
		for _, term := range secretTerms {
			if strings.Contains(lowerLine, term) {
				return redact.Redact(strings.TrimSpace(line)), true
			}
		}
	}
	return "", true
}

func missingTests(changedFiles []string) bool {
	srcChanged := false
	testChanged := false
	for _, path := range changedFiles {
		if looksLikeSource(path) {
			srcChanged = true
		}
		if looksLikeTest(path) {
			testChanged = true
		}
	}
	return srcChanged && !testChanged
}

func looksLikeSource(path string) bool {
	if strings.HasPrefix(path, "src/") || strings.HasPrefix(path, "app/") {
		return true
	}
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return sourceExts[path[idx:]]
	}
	return false
}

func looksLikeTest(path string) bool {
	return strings.HasPrefix(path, "tests/") ||
		strings.HasPrefix(path, "test_") ||
		strings.Contains(path, "/tests/")
}
